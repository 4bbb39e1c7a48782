// Package blend implements the compositing operators used when painting
// annotations onto an RGBA canvas.
//
// All operations work with premultiplied alpha values in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode selects a compositing operation.
type Mode uint8

const (
	SourceOver     Mode = iota // S + D*(1-Sa) [default]
	Source                     // S
	DestinationOut             // D*(1-Sa)
	Multiply                   // B(Cb, Cs) = Cb*Cs
	Screen                     // B(Cb, Cs) = 1-(1-Cb)*(1-Cs)
	Darken                     // B(Cb, Cs) = min(Cb, Cs)
	Lighten                    // B(Cb, Cs) = max(Cb, Cs)
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case SourceOver:
		return "source-over"
	case Source:
		return "source"
	case DestinationOut:
		return "destination-out"
	case Multiply:
		return "multiply"
	case Screen:
		return "screen"
	case Darken:
		return "darken"
	case Lighten:
		return "lighten"
	default:
		return "unknown"
	}
}

// Func is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetFunc returns the blend function for the given mode.
// Returns the source-over function for unknown modes.
func GetFunc(mode Mode) Func {
	switch mode {
	case Source:
		return blendSource
	case DestinationOut:
		return blendDestinationOut
	case Multiply:
		return blendMultiply
	case Screen:
		return blendScreen
	case Darken:
		return blendDarken
	case Lighten:
		return blendLighten
	default:
		return blendSourceOver
	}
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// blendSourceOver composites source over destination.
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := inv255(sa)
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// blendDestinationOut erases destination where source is opaque.
func blendDestinationOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := inv255(sa)
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return inv255(mulDiv255(inv255(s), inv255(d)))
	})
}

func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte { return min(s, d) })
}

func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte { return max(s, d) })
}

// separable applies a per-channel blend function B to unpremultiplied
// colors and recombines with the general formula
//
//	(1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cd)
func separable(sr, sg, sb, sa, dr, dg, db, da byte, fn func(s, d byte) byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	invSa, invDa := inv255(sa), inv255(da)
	saDa := mulDiv255(sa, da)
	channel := func(s, d byte) byte {
		b := fn(unpremultiply(s, sa), unpremultiply(d, da))
		c := addClamp(mulDiv255(d, invSa), mulDiv255(s, invDa))
		return addClamp(c, mulDiv255(saDa, b))
	}
	return channel(sr, dr), channel(sg, dg), channel(sb, db),
		addClamp(sa, mulDiv255(da, invSa))
}
