// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: power/power.go
// Summary: System power actions through systemd-logind on the D-Bus system bus.
// Usage: The launcher calls PowerOff or Reboot when the matching built-in is tapped.

package power

import (
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
)

// Service performs the power actions behind the built-in entries.
type Service interface {
	PowerOff() error
	Reboot() error
}

const (
	logindDest     = "org.freedesktop.login1"
	logindPath     = dbus.ObjectPath("/org/freedesktop/login1")
	managerIface   = "org.freedesktop.login1.Manager"
	methodPowerOff = managerIface + ".PowerOff"
	methodReboot   = managerIface + ".Reboot"
)

// Caller is the part of dbus.BusObject that Logind needs.
type Caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Logind asks systemd-logind to power off or reboot. The system bus is
// connected lazily on the first action and shared afterwards.
type Logind struct {
	mu  sync.Mutex
	obj Caller
}

// NewLogind returns a service that talks to the system bus.
func NewLogind() *Logind {
	return &Logind{}
}

// newLogindWith uses obj instead of connecting; tests substitute a recorder.
func newLogindWith(obj Caller) *Logind {
	return &Logind{obj: obj}
}

// PowerOff shuts the machine down without interactive authorization.
func (l *Logind) PowerOff() error {
	return l.call(methodPowerOff)
}

// Reboot restarts the machine without interactive authorization.
func (l *Logind) Reboot() error {
	return l.call(methodReboot)
}

func (l *Logind) call(method string) error {
	obj, err := l.object()
	if err != nil {
		return err
	}
	log.Printf("Power: Calling %s", method)
	if err := obj.Call(method, 0, false).Err; err != nil {
		return fmt.Errorf("logind %s: %w", method, err)
	}
	return nil
}

func (l *Logind) object() (Caller, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.obj != nil {
		return l.obj, nil
	}
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	l.obj = conn.Object(logindDest, logindPath)
	return l.obj, nil
}
