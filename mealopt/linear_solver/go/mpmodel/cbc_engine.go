// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mpmodel

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/google/uuid"
)

// ErrEngineNotFound is returned when the solver program cannot be located.
var ErrEngineNotFound = errors.New("solver program not found")

// DefaultCBCProgram is the name looked up on PATH when no explicit path is given.
const DefaultCBCProgram = "cbc"

// cbcGracePeriod is added to the time limit before the CBC process gets killed. CBC checks
// its limit between nodes and needs a moment to write the solution file.
const cbcGracePeriod = 5 * time.Second

// CBCEngine solves models with the COIN-OR CBC command line program. Each solve exports the
// model in LP format to a fresh temporary directory, runs CBC on it and reads back its
// solution file.
type CBCEngine struct {
	path string
	// keepFiles leaves the run directory on disk, for debugging.
	keepFiles bool
}

// NewCBCEngine returns an engine running the CBC program at `path`. An empty path looks up
// DefaultCBCProgram on PATH.
func NewCBCEngine(path string) (*CBCEngine, error) {
	if path == "" {
		path = DefaultCBCProgram
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%q: %v: %w", path, err, ErrEngineNotFound)
	}
	return &CBCEngine{path: resolved}, nil
}

// Path returns the resolved path of the CBC program.
func (e *CBCEngine) Path() string {
	return e.path
}

// KeepFiles makes the engine leave its LP and solution files on disk.
func (e *CBCEngine) KeepFiles(keep bool) *CBCEngine {
	e.keepFiles = keep
	return e
}

// cbcArguments returns the command line of a run, in the order CBC executes them.
func cbcArguments(lpPath, solPath string, params *Parameters) []string {
	args := []string{lpPath}
	if params.TimeLimit > 0 {
		args = append(args, "-sec", formatNumber(params.TimeLimit.Seconds()), "-timeMode", "elapsed")
	}
	if params.RelativeGap > 0 {
		args = append(args, "-ratio", formatNumber(params.RelativeGap))
	}
	if params.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(params.Threads))
	}
	return append(args, "-branch", "-printingOptions", "all", "-solution", solPath)
}

// Solve implements Engine.
func (e *CBCEngine) Solve(ctx context.Context, m *Model, params *Parameters) (*Response, error) {
	if params == nil {
		params = NewParameters()
	}
	lp, err := ExportModelAsLpFormat(m, ExportOptions{Obfuscate: true, MaxLineLength: 255})
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	dir, err := os.MkdirTemp("", "mealopt-cbc-"+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("creating the run directory: %w", err)
	}
	if e.keepFiles {
		log.Infof("CBC run %s kept in %s", runID, dir)
	} else {
		defer os.RemoveAll(dir)
	}
	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "solution.txt")
	if err := os.WriteFile(lpPath, []byte(lp), 0o600); err != nil {
		return nil, fmt.Errorf("writing the LP file: %w", err)
	}

	if params.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.TimeLimit+cbcGracePeriod)
		defer cancel()
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, cbcArguments(lpPath, solPath, params)...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	log.V(1).Infof("CBC run %s: %s %s", runID, e.path, strings.Join(cmd.Args[1:], " "))
	start := time.Now()
	runErr := cmd.Run()
	wall := time.Since(start)
	if ctx.Err() != nil {
		return nil, fmt.Errorf("CBC run %s interrupted after %v: %w", runID, wall, ctx.Err())
	}
	if params.LogOutput {
		log.Infof("CBC run %s output:\n%s", runID, out.String())
	}

	sol, err := os.ReadFile(solPath)
	if err != nil {
		if runErr != nil {
			return nil, fmt.Errorf("CBC run %s failed: %v\n%s", runID, runErr, tail(out.String(), 20))
		}
		return nil, fmt.Errorf("CBC run %s wrote no solution: %w", runID, err)
	}
	if runErr != nil {
		log.Warningf("CBC run %s exited with %v, reading its solution anyway", runID, runErr)
	}

	res, err := parseCBCSolution(sol, len(m.Variables))
	if err != nil {
		return nil, fmt.Errorf("CBC run %s: %w", runID, err)
	}
	if res.Status == StatusFeasible && strings.Contains(out.String(), "No feasible solution found") {
		res.Status = StatusNotSolved
		res.Values = nil
	}
	res.Iterations = parseCBCIterations(out.String())
	res.WallTime = wall
	if res.Status.HasSolution() {
		res.ObjectiveValue = m.Objective.Value(res.Values)
	}
	return res, nil
}

// parseCBCStatus maps the first line of a CBC solution file to a Status.
func parseCBCStatus(line string) Status {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "Optimal"):
		return StatusOptimal
	case strings.HasPrefix(line, "Infeasible"), strings.HasPrefix(line, "Integer infeasible"):
		return StatusInfeasible
	case strings.HasPrefix(line, "Unbounded"):
		return StatusUnbounded
	case strings.HasPrefix(line, "Stopped"):
		if strings.Contains(line, "no integer solution") {
			return StatusNotSolved
		}
		return StatusFeasible
	}
	return StatusAbnormal
}

// parseCBCSolution parses a solution file written with `-printingOptions all`:
//
//	Optimal - objective value 1.20000000
//	      0 V0                     1.2                       0
//	      1 V1                       1                       0
//
// Lines of infeasible columns are prefixed with `**`.
func parseCBCSolution(sol []byte, numVars int) (*Response, error) {
	sc := bufio.NewScanner(bytes.NewReader(sol))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	if !sc.Scan() {
		return nil, errors.New("empty solution file")
	}
	res := &Response{Status: parseCBCStatus(sc.Text())}
	if !res.Status.HasSolution() {
		return res, nil
	}
	res.Values = make([]float64, numVars)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 && fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		ind, ok := ParseObfuscatedVarName(fields[1])
		if !ok {
			continue
		}
		if int(ind) >= numVars {
			return nil, fmt.Errorf("solution references unknown column %s", fields[1])
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad value for column %s: %w", fields[1], err)
		}
		res.Values[ind] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading solution file: %w", err)
	}
	return res, nil
}

var cbcIterations = regexp.MustCompile(`(?m)^Total iterations:\s+(\d+)`)

// parseCBCIterations returns the simplex iteration count of the CBC log, or 0 if absent.
func parseCBCIterations(output string) int64 {
	m := cbcIterations.FindStringSubmatch(output)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func tail(s string, lines int) string {
	parts := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "\n")
}
