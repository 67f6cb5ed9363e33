package aggregate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/AndreyAkinshin/suiterun/internal/model"
)

func outcome(name string, exitCode, total, passed int) model.SuiteOutcome {
	return model.NewOutcome(model.SuiteSpec{Environment: "native", Filter: name}, exitCode, total, passed, "", "", 0)
}

func TestFold_Totals(t *testing.T) {
	t.Parallel()

	outcomes := []model.SuiteOutcome{
		outcome("a", 0, 10, 10),
		outcome("b", 1, 20, 15),
	}
	r := Fold(outcomes)

	if r.SuiteCount != 2 || r.SuccessfulSuites != 1 || r.FailedSuites() != 1 {
		t.Errorf("suites = %d/%d/%d, want 2/1/1", r.SuiteCount, r.SuccessfulSuites, r.FailedSuites())
	}
	if r.TotalTests != 30 || r.TotalPassed != 25 || r.TotalFailed != 5 {
		t.Errorf("tests = %d/%d/%d, want 30/25/5", r.TotalTests, r.TotalPassed, r.TotalFailed)
	}
	if r.SuitesWithTestFailures != 1 {
		t.Errorf("SuitesWithTestFailures = %d, want 1", r.SuitesWithTestFailures)
	}

	rate, ok := r.SuccessRate()
	if !ok || math.Abs(rate-83.333) > 0.01 {
		t.Errorf("SuccessRate() = %v, %v; want ~83.3, true", rate, ok)
	}
	if r.AllSucceeded() {
		t.Error("AllSucceeded() = true, want false")
	}
}

func TestFold_Empty(t *testing.T) {
	t.Parallel()

	r := Fold(nil)
	if r != (Report{}) {
		t.Errorf("Fold(nil) = %+v, want zero", r)
	}
	if _, ok := r.SuccessRate(); ok {
		t.Error("expected undefined success rate")
	}
	if !r.AllSucceeded() {
		t.Error("empty run should count as all succeeded")
	}
}

func TestFold_TimeoutAndLaunchFailure(t *testing.T) {
	t.Parallel()

	outcomes := []model.SuiteOutcome{
		model.TimeoutOutcome(model.SuiteSpec{Environment: "native", Filter: "slow"}, 0),
		model.LaunchFailureOutcome(model.SuiteSpec{Environment: "native", Filter: "gone"}, nil),
		outcome("ok", 0, 4, 4),
	}
	r := Fold(outcomes)

	if r.SuiteCount != 3 || r.SuccessfulSuites != 1 {
		t.Errorf("suites = %d/%d, want 3/1", r.SuiteCount, r.SuccessfulSuites)
	}
	if r.TotalTests != 4 || r.TotalPassed != 4 || r.TotalFailed != 0 {
		t.Errorf("tests = %d/%d/%d, want 4/4/0", r.TotalTests, r.TotalPassed, r.TotalFailed)
	}
}

func TestFold_InvariantAndOrderIndependence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(12)
		outcomes := make([]model.SuiteOutcome, n)
		for i := range outcomes {
			total := rng.Intn(50)
			passed := 0
			if total > 0 {
				passed = rng.Intn(total + 1)
			}
			switch rng.Intn(5) {
			case 0:
				outcomes[i] = model.TimeoutOutcome(model.SuiteSpec{Environment: "e"}, 0)
			case 1:
				outcomes[i] = model.LaunchFailureOutcome(model.SuiteSpec{Environment: "e"}, nil)
			default:
				outcomes[i] = outcome("s", rng.Intn(2), total, passed)
			}
		}

		want := Fold(outcomes)
		if want.TotalPassed+want.TotalFailed != want.TotalTests {
			t.Fatalf("trial %d: passed %d + failed %d != total %d", trial, want.TotalPassed, want.TotalFailed, want.TotalTests)
		}

		shuffled := append([]model.SuiteOutcome(nil), outcomes...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if got := Fold(shuffled); got != want {
			t.Fatalf("trial %d: Fold depends on order: %+v vs %+v", trial, got, want)
		}
	}
}
