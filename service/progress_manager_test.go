package service

import (
	"testing"
)

func TestNewProgressManager_Disabled(t *testing.T) {
	pm := NewProgressManager(false)

	if _, ok := pm.(*NoOpProgressManager); !ok {
		t.Errorf("disabled progress should return NoOpProgressManager, got %T", pm)
	}
	if pm.IsInteractive() {
		t.Error("no-op manager should not be interactive")
	}
}

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}

	task := pm.StartTask("working", 10)
	task.Increment(5)
	task.Describe("still working")
	task.Complete()
	pm.Close()
}

func TestProgressManagerImpl_Lifecycle(t *testing.T) {
	pm := &ProgressManagerImpl{writer: discardWriter{}}

	if !pm.IsInteractive() {
		t.Error("ProgressManagerImpl should report interactive")
	}

	task := pm.StartTask("checking", 3)
	task.Increment(1)
	task.Describe("pylint")
	task.Increment(2)
	task.Complete()

	pm.Close()
	if pm.tasks != nil {
		t.Error("Close should release tasks")
	}
}

func TestTaskProgress_DescribeKeepsRunLabel(t *testing.T) {
	pm := &ProgressManagerImpl{writer: discardWriter{}}

	task := pm.StartTask("Running checkers", 2).(*TaskProgressImpl)

	task.Describe("mypy")
	if got := task.bar.State().Description; got != "Running checkers: mypy" {
		t.Errorf("Unexpected description: %q", got)
	}

	task.Describe("Running checkers")
	if got := task.bar.State().Description; got != "Running checkers" {
		t.Errorf("Unexpected reset description: %q", got)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
