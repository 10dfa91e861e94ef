package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("hello")
	if !called {
		t.Error("custom logger was not called")
	}

	called = false
	SetLogger(nil)
	Logf("hello")
	if called {
		t.Error("nil logger should be a no-op")
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
}
