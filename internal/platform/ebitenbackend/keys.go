package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"

	"smolwin/internal/platform"
)

var toEbitenKey = map[platform.Key]ebiten.Key{
	platform.KeyA: ebiten.KeyA, platform.KeyB: ebiten.KeyB, platform.KeyC: ebiten.KeyC,
	platform.KeyD: ebiten.KeyD, platform.KeyE: ebiten.KeyE, platform.KeyF: ebiten.KeyF,
	platform.KeyG: ebiten.KeyG, platform.KeyH: ebiten.KeyH, platform.KeyI: ebiten.KeyI,
	platform.KeyJ: ebiten.KeyJ, platform.KeyK: ebiten.KeyK, platform.KeyL: ebiten.KeyL,
	platform.KeyM: ebiten.KeyM, platform.KeyN: ebiten.KeyN, platform.KeyO: ebiten.KeyO,
	platform.KeyP: ebiten.KeyP, platform.KeyQ: ebiten.KeyQ, platform.KeyR: ebiten.KeyR,
	platform.KeyS: ebiten.KeyS, platform.KeyT: ebiten.KeyT, platform.KeyU: ebiten.KeyU,
	platform.KeyV: ebiten.KeyV, platform.KeyW: ebiten.KeyW, platform.KeyX: ebiten.KeyX,
	platform.KeyY: ebiten.KeyY, platform.KeyZ: ebiten.KeyZ,

	platform.Key0: ebiten.KeyDigit0, platform.Key1: ebiten.KeyDigit1,
	platform.Key2: ebiten.KeyDigit2, platform.Key3: ebiten.KeyDigit3,
	platform.Key4: ebiten.KeyDigit4, platform.Key5: ebiten.KeyDigit5,
	platform.Key6: ebiten.KeyDigit6, platform.Key7: ebiten.KeyDigit7,
	platform.Key8: ebiten.KeyDigit8, platform.Key9: ebiten.KeyDigit9,

	platform.KeyF1: ebiten.KeyF1, platform.KeyF2: ebiten.KeyF2, platform.KeyF3: ebiten.KeyF3,
	platform.KeyF4: ebiten.KeyF4, platform.KeyF5: ebiten.KeyF5, platform.KeyF6: ebiten.KeyF6,
	platform.KeyF7: ebiten.KeyF7, platform.KeyF8: ebiten.KeyF8, platform.KeyF9: ebiten.KeyF9,
	platform.KeyF10: ebiten.KeyF10, platform.KeyF11: ebiten.KeyF11, platform.KeyF12: ebiten.KeyF12,

	platform.KeyLeftShift:    ebiten.KeyShiftLeft,
	platform.KeyRightShift:   ebiten.KeyShiftRight,
	platform.KeyLeftControl:  ebiten.KeyControlLeft,
	platform.KeyRightControl: ebiten.KeyControlRight,
	platform.KeyLeftAlt:      ebiten.KeyAltLeft,
	platform.KeyRightAlt:     ebiten.KeyAltRight,
	platform.KeyLeftSuper:    ebiten.KeyMetaLeft,
	platform.KeyRightSuper:   ebiten.KeyMetaRight,

	platform.KeySpace:       ebiten.KeySpace,
	platform.KeyEnter:       ebiten.KeyEnter,
	platform.KeyEscape:      ebiten.KeyEscape,
	platform.KeyBackspace:   ebiten.KeyBackspace,
	platform.KeyDelete:      ebiten.KeyDelete,
	platform.KeyTab:         ebiten.KeyTab,
	platform.KeyCapsLock:    ebiten.KeyCapsLock,
	platform.KeyScrollLock:  ebiten.KeyScrollLock,
	platform.KeyNumLock:     ebiten.KeyNumLock,
	platform.KeyPrintScreen: ebiten.KeyPrintScreen,
	platform.KeyPause:       ebiten.KeyPause,

	platform.KeyUp:    ebiten.KeyArrowUp,
	platform.KeyDown:  ebiten.KeyArrowDown,
	platform.KeyLeft:  ebiten.KeyArrowLeft,
	platform.KeyRight: ebiten.KeyArrowRight,

	platform.KeyHome:     ebiten.KeyHome,
	platform.KeyEnd:      ebiten.KeyEnd,
	platform.KeyPageUp:   ebiten.KeyPageUp,
	platform.KeyPageDown: ebiten.KeyPageDown,
	platform.KeyInsert:   ebiten.KeyInsert,

	platform.KeyGraveAccent:  ebiten.KeyBackquote,
	platform.KeyMinus:        ebiten.KeyMinus,
	platform.KeyEqual:        ebiten.KeyEqual,
	platform.KeyLeftBracket:  ebiten.KeyBracketLeft,
	platform.KeyRightBracket: ebiten.KeyBracketRight,
	platform.KeyBackslash:    ebiten.KeyBackslash,
	platform.KeySemicolon:    ebiten.KeySemicolon,
	platform.KeyApostrophe:   ebiten.KeyQuote,
	platform.KeyComma:        ebiten.KeyComma,
	platform.KeyPeriod:       ebiten.KeyPeriod,
	platform.KeySlash:        ebiten.KeySlash,

	platform.KeyNumpad0: ebiten.KeyNumpad0, platform.KeyNumpad1: ebiten.KeyNumpad1,
	platform.KeyNumpad2: ebiten.KeyNumpad2, platform.KeyNumpad3: ebiten.KeyNumpad3,
	platform.KeyNumpad4: ebiten.KeyNumpad4, platform.KeyNumpad5: ebiten.KeyNumpad5,
	platform.KeyNumpad6: ebiten.KeyNumpad6, platform.KeyNumpad7: ebiten.KeyNumpad7,
	platform.KeyNumpad8: ebiten.KeyNumpad8, platform.KeyNumpad9: ebiten.KeyNumpad9,

	platform.KeyNumpadDecimal:  ebiten.KeyNumpadDecimal,
	platform.KeyNumpadDivide:   ebiten.KeyNumpadDivide,
	platform.KeyNumpadMultiply: ebiten.KeyNumpadMultiply,
	platform.KeyNumpadSubtract: ebiten.KeyNumpadSubtract,
	platform.KeyNumpadAdd:      ebiten.KeyNumpadAdd,
	platform.KeyNumpadEnter:    ebiten.KeyNumpadEnter,
}

var fromEbitenKey = func() map[ebiten.Key]platform.Key {
	m := make(map[ebiten.Key]platform.Key, len(toEbitenKey))
	for pk, ek := range toEbitenKey {
		m[ek] = pk
	}
	return m
}()

var buttonMap = [platform.ButtonCount]ebiten.MouseButton{
	platform.ButtonLeft:   ebiten.MouseButtonLeft,
	platform.ButtonRight:  ebiten.MouseButtonRight,
	platform.ButtonMiddle: ebiten.MouseButtonMiddle,
	platform.ButtonX1:     ebiten.MouseButton3,
	platform.ButtonX2:     ebiten.MouseButton4,
}
