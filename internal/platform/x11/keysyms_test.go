package x11

import (
	"image"
	"testing"

	"github.com/jezek/xgb/xproto"

	"smolwin/internal/platform"
)

func TestNewKeymapUsesFirstColumn(t *testing.T) {
	// Two keysyms per code: code 10 is a/A, code 11 is Escape, code 12 repeats a.
	syms := []xproto.Keysym{
		0x61, 0x41,
		0xff1b, 0,
		0x61, 0x41,
	}
	km := newKeymap(10, 2, syms)

	if code := km.toCode[platform.KeyA]; code != 10 {
		t.Fatalf("KeyA mapped to %d, want 10", code)
	}
	if code := km.toCode[platform.KeyEscape]; code != 11 {
		t.Fatalf("Escape mapped to %d, want 11", code)
	}
	if k := km.fromCode[11]; k != platform.KeyEscape {
		t.Fatalf("code 11 resolved to %v", k)
	}
	if _, ok := km.fromCode[12]; ok {
		t.Fatal("duplicate keysym should keep the first keycode only")
	}
	if _, ok := km.toCode[platform.KeyB]; ok {
		t.Fatal("unmapped key resolved to a keycode")
	}
}

func TestNewKeymapResolvesNumpadColumn(t *testing.T) {
	// Stock xkb numpad: KP_Home/KP_7 on code 79, KP_Delete/KP_Decimal on 80,
	// and Home itself on code 81 in column 0.
	syms := []xproto.Keysym{
		0xff95, 0xffb7,
		0xff9f, 0xffae,
		0xff50, 0,
	}
	km := newKeymap(79, 2, syms)

	if code, ok := km.toCode[platform.KeyNumpad7]; !ok || code != 79 {
		t.Fatalf("KeyNumpad7 mapped to %d (%v), want 79", code, ok)
	}
	if code, ok := km.toCode[platform.KeyNumpadDecimal]; !ok || code != 80 {
		t.Fatalf("KeyNumpadDecimal mapped to %d (%v), want 80", code, ok)
	}
	if k := km.fromCode[79]; k != platform.KeyNumpad7 {
		t.Fatalf("code 79 resolved to %v", k)
	}
	if code := km.toCode[platform.KeyHome]; code != 81 {
		t.Fatalf("KeyHome mapped to %d, want 81", code)
	}
}

func TestNewKeymapPrefersFirstColumn(t *testing.T) {
	// Code 20 carries '1' in column 1, code 21 carries it in column 0.
	syms := []xproto.Keysym{
		0xff1b, 0x31,
		0x31, 0x21,
	}
	km := newKeymap(20, 2, syms)
	if code := km.toCode[platform.Key1]; code != 21 {
		t.Fatalf("Key1 mapped to %d, want 21", code)
	}
	if k := km.fromCode[20]; k != platform.KeyEscape {
		t.Fatalf("code 20 resolved to %v", k)
	}
}

func TestNewKeymapZeroWidth(t *testing.T) {
	km := newKeymap(8, 0, []xproto.Keysym{0x61})
	if len(km.toCode) != 0 {
		t.Fatalf("expected empty keymap, got %v", km.toCode)
	}
}

func TestHeld(t *testing.T) {
	keys := make([]byte, 32)
	keys[38/8] |= 1 << (38 % 8)

	if !held(keys, 38) {
		t.Fatal("keycode 38 should be held")
	}
	if held(keys, 39) {
		t.Fatal("keycode 39 should not be held")
	}
	if held(keys[:2], 38) {
		t.Fatal("out of range keycode reported held")
	}
}

func TestButtonFromDetail(t *testing.T) {
	cases := map[xproto.Button]platform.Button{
		1: platform.ButtonLeft,
		2: platform.ButtonMiddle,
		3: platform.ButtonRight,
		8: platform.ButtonX1,
		9: platform.ButtonX2,
	}
	for d, want := range cases {
		got, ok := buttonFromDetail(d)
		if !ok || got != want {
			t.Errorf("detail %d: got %v, %v", d, got, ok)
		}
	}
	// Wheel events arrive as buttons 4 and 5.
	if _, ok := buttonFromDetail(4); ok {
		t.Error("wheel detail mapped to a button")
	}
}

func TestInputAnswersFromLastSample(t *testing.T) {
	// No connection: every query must be served from the cached reading.
	b := &Backend{keys: newKeymap(38, 1, []xproto.Keysym{0x61, 0x62})}
	bits := make([]byte, 32)
	bits[38/8] |= 1 << (38 % 8)
	in := &input{backend: b, keyBits: bits, cursor: image.Pt(120, 45), mask: xproto.ButtonMask3}
	in.side[platform.ButtonX2] = true

	if !in.IsKeyPressed(platform.KeyA) {
		t.Fatal("KeyA should read as held")
	}
	if in.IsKeyPressed(platform.KeyB) || in.IsKeyPressed(platform.KeyZ) {
		t.Fatal("KeyB and KeyZ should read as released")
	}
	if !in.IsButtonPressed(platform.ButtonRight) || in.IsButtonPressed(platform.ButtonLeft) {
		t.Fatal("button mask not applied")
	}
	if !in.IsButtonPressed(platform.ButtonX2) || in.IsButtonPressed(platform.ButtonX1) {
		t.Fatal("side buttons not taken from event state")
	}
	if got := in.CursorPosition(); got != image.Pt(120, 45) {
		t.Fatalf("cursor %v, want (120,45)", got)
	}
}
