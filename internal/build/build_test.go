package build

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/suiterun/internal/executor"
)

type scriptedExecutor struct {
	results map[string]executor.Result
	errs    map[string]error
	calls   []executor.Command
}

func (s *scriptedExecutor) Execute(_ context.Context, cmd executor.Command) (executor.Result, error) {
	s.calls = append(s.calls, cmd)
	platform := cmd.Args[len(cmd.Args)-1]
	if err, ok := s.errs[platform]; ok {
		return executor.Result{}, err
	}
	return s.results[platform], nil
}

func pioRun() []string {
	return []string{"pio", "run", "-e", PlaceholderPlatform}
}

func TestBuildAll_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	se := &scriptedExecutor{results: map[string]executor.Result{
		"esp32":      {ExitCode: 0},
		"native":     {ExitCode: 1, Stderr: "undefined reference"},
		"atmega328p": {ExitCode: 0},
	}}
	b := NewBuilder(se, pioRun(), "/project", time.Minute, nil)

	results := b.BuildAll(context.Background(), []string{"esp32", "native", "atmega328p"}, nil)

	require.Len(t, results, 3)
	assert.Equal(t, StatusSucceeded, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.Equal(t, "undefined reference", results[1].Stderr)
	assert.Equal(t, StatusSkipped, results[2].Status)
	assert.Len(t, se.calls, 2)
	assert.False(t, AllSucceeded(results))
}

func TestBuildAll_AllSucceed(t *testing.T) {
	t.Parallel()

	se := &scriptedExecutor{results: map[string]executor.Result{}}
	results := NewBuilder(se, pioRun(), "", 0, nil).BuildAll(context.Background(), []string{"esp32", "native"}, nil)

	assert.True(t, AllSucceeded(results))
	require.Len(t, se.calls, 2)
	assert.Equal(t, "pio", se.calls[0].Name)
	assert.Equal(t, []string{"run", "-e", "esp32"}, se.calls[0].Args)
}

func TestBuildAll_LaunchFailureAndTimeout(t *testing.T) {
	t.Parallel()

	se := &scriptedExecutor{
		errs:    map[string]error{"esp32": &executor.LaunchError{Cause: exec.ErrNotFound}},
		results: map[string]executor.Result{"native": {TimedOut: true, ExitCode: -1}},
	}
	b := NewBuilder(se, pioRun(), "", time.Second, nil)

	first := b.BuildAll(context.Background(), []string{"esp32"}, nil)
	require.Len(t, first, 1)
	assert.Equal(t, StatusLaunchFailed, first[0].Status)
	assert.ErrorIs(t, first[0].Err, exec.ErrNotFound)

	second := b.BuildAll(context.Background(), []string{"native"}, nil)
	assert.Equal(t, StatusTimedOut, second[0].Status)
}

type recorder struct{ events []string }

func (r *recorder) BuildStarted(platform string, _ executor.Command) {
	r.events = append(r.events, "start:"+platform)
}

func (r *recorder) BuildFinished(result PlatformResult) {
	r.events = append(r.events, result.Platform+":"+result.Status.String())
}

func TestBuildAll_Observer(t *testing.T) {
	t.Parallel()

	se := &scriptedExecutor{results: map[string]executor.Result{"b": {ExitCode: 2}}}
	obs := &recorder{}
	NewBuilder(se, pioRun(), "", 0, nil).BuildAll(context.Background(), []string{"a", "b", "c"}, obs)

	assert.Equal(t, []string{"start:a", "a:succeeded", "start:b", "b:failed"}, obs.events)
}

func TestBuilder_Command(t *testing.T) {
	t.Parallel()

	cmd := NewBuilder(nil, []string{"pio", "run", "--environment={platform}"}, "/src", time.Minute, nil).Command("esp32")
	assert.Equal(t, "pio", cmd.Name)
	assert.Equal(t, []string{"run", "--environment=esp32"}, cmd.Args)
	assert.Equal(t, "/src", cmd.Dir)
	assert.Equal(t, time.Minute, cmd.Timeout)
}
