package synth

// DefaultSampleRate is the rate every block starts with.
const DefaultSampleRate = Hertz(44_100)

// Attenuation applied to white noise in the noise patch (divide by 4).
const noisePatchShift = 2

// Noise patch filter settings
const (
	noisePatchCutoffHz  = 200
	noisePatchResonance = QMax / 8
)

// Default pluck envelope length
const defaultPluckDecayMs = 400
