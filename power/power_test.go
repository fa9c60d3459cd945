// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package power

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type recorder struct {
	methods []string
	args    [][]interface{}
	err     error
}

func (r *recorder) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	r.methods = append(r.methods, method)
	r.args = append(r.args, args)
	return &dbus.Call{Method: method, Args: args, Err: r.err}
}

func TestLogindCallsManager(t *testing.T) {
	rec := &recorder{}
	svc := newLogindWith(rec)

	if err := svc.PowerOff(); err != nil {
		t.Fatalf("PowerOff: %v", err)
	}
	if err := svc.Reboot(); err != nil {
		t.Fatalf("Reboot: %v", err)
	}

	want := []string{"org.freedesktop.login1.Manager.PowerOff", "org.freedesktop.login1.Manager.Reboot"}
	if len(rec.methods) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), rec.methods)
	}
	for i, m := range want {
		if rec.methods[i] != m {
			t.Errorf("call %d: expected %s, got %s", i, m, rec.methods[i])
		}
		if len(rec.args[i]) != 1 || rec.args[i][0] != false {
			t.Errorf("call %d: expected a single false argument, got %v", i, rec.args[i])
		}
	}
}

func TestLogindWrapsErrors(t *testing.T) {
	denied := errors.New("access denied")
	svc := newLogindWith(&recorder{err: denied})

	err := svc.Reboot()
	if !errors.Is(err, denied) {
		t.Fatalf("expected wrapped bus error, got %v", err)
	}
}

var _ Service = (*Logind)(nil)
