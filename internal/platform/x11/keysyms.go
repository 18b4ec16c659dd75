package x11

import (
	"github.com/jezek/xgb/xproto"

	"smolwin/internal/platform"
)

// keysyms maps keys to their X11 keysym. Letters use the lowercase keysym,
// which is what the first column of the keyboard mapping carries.
var keysyms = map[platform.Key]xproto.Keysym{
	platform.KeyA: 0x61, platform.KeyB: 0x62, platform.KeyC: 0x63, platform.KeyD: 0x64,
	platform.KeyE: 0x65, platform.KeyF: 0x66, platform.KeyG: 0x67, platform.KeyH: 0x68,
	platform.KeyI: 0x69, platform.KeyJ: 0x6a, platform.KeyK: 0x6b, platform.KeyL: 0x6c,
	platform.KeyM: 0x6d, platform.KeyN: 0x6e, platform.KeyO: 0x6f, platform.KeyP: 0x70,
	platform.KeyQ: 0x71, platform.KeyR: 0x72, platform.KeyS: 0x73, platform.KeyT: 0x74,
	platform.KeyU: 0x75, platform.KeyV: 0x76, platform.KeyW: 0x77, platform.KeyX: 0x78,
	platform.KeyY: 0x79, platform.KeyZ: 0x7a,

	platform.Key0: 0x30, platform.Key1: 0x31, platform.Key2: 0x32, platform.Key3: 0x33,
	platform.Key4: 0x34, platform.Key5: 0x35, platform.Key6: 0x36, platform.Key7: 0x37,
	platform.Key8: 0x38, platform.Key9: 0x39,

	platform.KeyF1: 0xffbe, platform.KeyF2: 0xffbf, platform.KeyF3: 0xffc0,
	platform.KeyF4: 0xffc1, platform.KeyF5: 0xffc2, platform.KeyF6: 0xffc3,
	platform.KeyF7: 0xffc4, platform.KeyF8: 0xffc5, platform.KeyF9: 0xffc6,
	platform.KeyF10: 0xffc7, platform.KeyF11: 0xffc8, platform.KeyF12: 0xffc9,

	platform.KeyLeftShift:    0xffe1,
	platform.KeyRightShift:   0xffe2,
	platform.KeyLeftControl:  0xffe3,
	platform.KeyRightControl: 0xffe4,
	platform.KeyLeftAlt:      0xffe9,
	platform.KeyRightAlt:     0xffea,
	platform.KeyLeftSuper:    0xffeb,
	platform.KeyRightSuper:   0xffec,

	platform.KeySpace:       0x20,
	platform.KeyEnter:       0xff0d,
	platform.KeyEscape:      0xff1b,
	platform.KeyBackspace:   0xff08,
	platform.KeyDelete:      0xffff,
	platform.KeyTab:         0xff09,
	platform.KeyCapsLock:    0xffe5,
	platform.KeyScrollLock:  0xff14,
	platform.KeyNumLock:     0xff7f,
	platform.KeyPrintScreen: 0xff61,
	platform.KeyPause:       0xff13,

	platform.KeyLeft:  0xff51,
	platform.KeyUp:    0xff52,
	platform.KeyRight: 0xff53,
	platform.KeyDown:  0xff54,

	platform.KeyHome:     0xff50,
	platform.KeyPageUp:   0xff55,
	platform.KeyPageDown: 0xff56,
	platform.KeyEnd:      0xff57,
	platform.KeyInsert:   0xff63,

	platform.KeyGraveAccent:  0x60,
	platform.KeyMinus:        0x2d,
	platform.KeyEqual:        0x3d,
	platform.KeyLeftBracket:  0x5b,
	platform.KeyRightBracket: 0x5d,
	platform.KeyBackslash:    0x5c,
	platform.KeySemicolon:    0x3b,
	platform.KeyApostrophe:   0x27,
	platform.KeyComma:        0x2c,
	platform.KeyPeriod:       0x2e,
	platform.KeySlash:        0x2f,

	platform.KeyNumpad0: 0xffb0, platform.KeyNumpad1: 0xffb1, platform.KeyNumpad2: 0xffb2,
	platform.KeyNumpad3: 0xffb3, platform.KeyNumpad4: 0xffb4, platform.KeyNumpad5: 0xffb5,
	platform.KeyNumpad6: 0xffb6, platform.KeyNumpad7: 0xffb7, platform.KeyNumpad8: 0xffb8,
	platform.KeyNumpad9: 0xffb9,

	platform.KeyNumpadDecimal:  0xffae,
	platform.KeyNumpadDivide:   0xffaf,
	platform.KeyNumpadMultiply: 0xffaa,
	platform.KeyNumpadSubtract: 0xffad,
	platform.KeyNumpadAdd:      0xffab,
	platform.KeyNumpadEnter:    0xff8d,
}

// keymap resolves keys to keycodes for the connected keyboard.
type keymap struct {
	toCode   map[platform.Key]xproto.Keycode
	fromCode map[xproto.Keycode]platform.Key
}

// newKeymap builds the lookup from every keysym column of the mapping.
// Columns are scanned in order, so a keysym in column 0 of one keycode wins
// over the same keysym in a later column of another. Numpad digits live in
// column 1, behind the navigation keysyms.
func newKeymap(first xproto.Keycode, perCode int, syms []xproto.Keysym) keymap {
	km := keymap{
		toCode:   make(map[platform.Key]xproto.Keycode, len(keysyms)),
		fromCode: make(map[xproto.Keycode]platform.Key, len(keysyms)),
	}
	if perCode <= 0 {
		return km
	}
	byKey := make(map[xproto.Keysym]platform.Key, len(keysyms))
	for k, sym := range keysyms {
		byKey[sym] = k
	}
	codes := len(syms) / perCode
	for col := 0; col < perCode; col++ {
		for i := 0; i < codes; i++ {
			k, ok := byKey[syms[i*perCode+col]]
			if !ok {
				continue
			}
			if _, seen := km.toCode[k]; seen {
				continue
			}
			code := first + xproto.Keycode(i)
			km.toCode[k] = code
			if _, taken := km.fromCode[code]; !taken {
				km.fromCode[code] = k
			}
		}
	}
	return km
}

// held reports whether code is set in a QueryKeymap bit vector.
func held(keys []byte, code xproto.Keycode) bool {
	i := int(code) / 8
	return i < len(keys) && keys[i]&(1<<(uint(code)%8)) != 0
}

var buttonMasks = [platform.ButtonCount]uint16{
	platform.ButtonLeft:   xproto.ButtonMask1,
	platform.ButtonMiddle: xproto.ButtonMask2,
	platform.ButtonRight:  xproto.ButtonMask3,
}

func buttonFromDetail(d xproto.Button) (platform.Button, bool) {
	switch d {
	case 1:
		return platform.ButtonLeft, true
	case 2:
		return platform.ButtonMiddle, true
	case 3:
		return platform.ButtonRight, true
	case 8:
		return platform.ButtonX1, true
	case 9:
		return platform.ButtonX2, true
	}
	return 0, false
}
