package curve

import "github.com/Carmen-Shannon/oxy-anim/common"

// Blend interpolates from a to b by weight w. Quaternions are blended with shortest-arc slerp,
// every other kind component-wise. The result carries a's kind, or b's when a is unset.
//
// Parameters:
//   - a: the value at weight 0
//   - b: the value at weight 1
//   - w: the blend weight
//
// Returns:
//   - Value: the blended value
func Blend(a, b Value, w float32) Value {
	kind := a.Kind
	if kind == ValueKindNone {
		kind = b.Kind
	}
	if kind == ValueKindQuaternion {
		return Value{Kind: kind, V: common.QuatSlerp(a.V, b.V, w)}
	}
	out := Value{Kind: kind}
	for c := range kind.Size() {
		out.V[c] = common.Lerp(a.V[c], b.V[c], w)
	}
	return out
}

// IsFinite reports whether every meaningful component of v is finite.
func (v Value) IsFinite() bool {
	for c := range v.Kind.Size() {
		if !common.IsFinite(v.V[c]) {
			return false
		}
	}
	return true
}
