package drivers

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func assertBools(t testing.TB, got, want bool) {
	t.Helper()

	if got != want {
		t.Errorf("got %v want %v", got, want)
	}
}

func assertUint16Slices(t testing.TB, got, want []uint16) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("len(got) = %d len(want) = %d", len(got), len(want))
		return
	}

	for key, val := range got {
		if want[key] != val {
			t.Errorf("for key [%d] got: %d want: %d", key, val, want[key])
		}
	}
}

func TestMockInputGetState(t *testing.T) {
	inEnabled := MockInput{State: true}
	inDisabled := MockInput{State: false}

	state, _ := inEnabled.GetState()
	if state != true {
		t.Error("MockInput GetState failed")
	}

	state, _ = inDisabled.GetState()
	if state != false {
		t.Error("MockInput GetState failed")
	}
}

func TestMockOutputSetState(t *testing.T) {
	out := MockOutput{}

	want := true
	out.Set(want)
	got, _ := out.GetState()
	assertBools(t, got, want)

	want = false
	out.Set(want)
	got, _ = out.GetState()
	assertBools(t, got, want)
}

func TestMockIoSetup(t *testing.T) {
	md := MockIoDriver{}

	want := false
	got := md.IsReady()
	assertBools(t, got, want)

	md.Setup(context.Background(), []uint16{1, 3, 5}, []uint16{2, 4})
	want = true
	got = md.IsReady()
	assertBools(t, got, want)

	md.Close()
	assertBools(t, md.IsReady(), false)
}

func TestMockIoGetAllIo(t *testing.T) {
	md := MockIoDriver{}
	md.Setup(context.Background(), []uint16{1, 3, 5}, []uint16{2, 4})
	inputs, outputs := md.GetAllIo()
	assertUint16Slices(t, inputs, []uint16{1, 3, 5})
	assertUint16Slices(t, outputs, []uint16{2, 4})
}

func TestMockInputsStartPulledUp(t *testing.T) {
	md := MockIoDriver{}
	md.Setup(context.Background(), []uint16{4}, nil)

	input, err := md.GetInput(4)
	if err != nil {
		t.Fatalf("GetInput returned err: %v", err)
	}
	state, _ := input.GetState()
	assertBools(t, state, true)

	err = md.SetInput(4, false)
	if err != nil {
		t.Fatalf("SetInput returned err: %v", err)
	}
	state, _ = input.GetState()
	assertBools(t, state, false)

	if md.SetInput(9, false) == nil {
		t.Error("SetInput on unknown pin returned nil error")
	}
}

func TestMockInputFailure(t *testing.T) {
	md := MockIoDriver{}
	md.Setup(context.Background(), []uint16{1}, nil)
	input, _ := md.GetInput(1)

	readErr := errors.New("bus error")
	md.FailInput(1, readErr)
	_, err := input.GetState()
	if !errors.Is(err, readErr) {
		t.Errorf("got %v want %v", err, readErr)
	}

	md.FailInput(1, nil)
	_, err = input.GetState()
	if err != nil {
		t.Errorf("got %v after clearing failure", err)
	}
}

func TestMockGetOutput(t *testing.T) {
	md := MockIoDriver{}
	md.Setup(context.Background(), []uint16{}, []uint16{3})
	output, err := md.GetOutput(3)
	if err != nil {
		t.Errorf("GetOutput returned err: %v", err)
	}

	want := true
	output.Set(want)
	got, _ := output.GetState()
	assertBools(t, got, want)

	anotherOut, _ := md.GetOutput(3)
	got, _ = anotherOut.GetState()
	assertBools(t, got, want)

	md.Close()
	got, _ = output.GetState()
	assertBools(t, got, false)

	_, err = md.GetOutput(4)
	if err == nil {
		t.Error("GetOutput on unknown pin returned nil error")
	}
}

func TestMockMonitorStateChanges(t *testing.T) {
	md := MockIoDriver{}
	md.Setup(context.Background(), nil, []uint16{6})
	buf := &bytes.Buffer{}
	md.MonitorStateChanges(buf)

	out, _ := md.GetOutput(6)
	out.Set(true)
	out.Set(true)
	out.Set(false)

	want := "[pin 6] state changed to true\n[pin 6] state changed to false\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}
