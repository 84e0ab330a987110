package audio

// Output format
const (
	// SampleRate is the rate at which the mixer renders samples (mono, signed 16-bit)
	SampleRate = 44100

	// PatternRate is the rate a channel's repeat count is expressed in.
	// A tone of f Hz is programmed as PatternRate / f, and the mixer flips the
	// square wave every Total output samples, giving SampleRate / (2 * Total) Hz.
	PatternRate = 22050

	// DefaultChannelCount is the number of channel slots a mixer exposes
	DefaultChannelCount = 4
)

// Amplitude levels a channel can be programmed with
const (
	AmplitudeSilent uint8 = 0
	AmplitudeLow    uint8 = 12
	AmplitudeHigh   uint8 = 0x30
)

// Sample generation constants
const (
	sampleScale    = 256
	maxSampleValue = 32767
	minSampleValue = -32768
	bytesPerSample = 2
)
