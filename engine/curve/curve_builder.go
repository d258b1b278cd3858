package curve

// TrackBuilderOption is a functional option for configuring a Track during construction.
type TrackBuilderOption func(*track)

// WithCapacity is an option builder that preallocates room for the given number of keys.
//
// Parameters:
//   - n: the expected key count
//
// Returns:
//   - TrackBuilderOption: a function that applies the capacity option to a track
func WithCapacity(n int) TrackBuilderOption {
	return func(c *track) {
		if n > cap(c.keys) {
			keys := make([]Keyframe, len(c.keys), n)
			copy(keys, c.keys)
			c.keys = keys
		}
	}
}

// WithKeys is an option builder that appends keys through AddKey, in the order given.
// Keys of a kind that differs from the first key are ignored, as with AddKey.
//
// Parameters:
//   - keys: the keyframes to append
//
// Returns:
//   - TrackBuilderOption: a function that applies the keys option to a track
func WithKeys(keys ...Keyframe) TrackBuilderOption {
	return func(c *track) {
		for _, k := range keys {
			c.AddKey(k)
		}
	}
}
