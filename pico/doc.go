// Package pico runs the slot sequencer on the RP2040 board itself. It builds
// with TinyGo only; the desktop and Raspberry Pi builds live in the root
// package.
package pico
