// Package audio plays the looping day and night ambience and crossfades
// between them as the sky changes.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// track is one looping ambience layer.
type track struct {
	source beep.StreamSeekCloser
	volume *effects.Volume
	path   string
}

// Manager owns the speaker and the two ambience tracks.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume   float64
	ambienceVolume float64
	dayAmount      float64

	day, night *track
	mixer      *beep.Mixer

	log *zap.Logger
}

// New creates a manager with the configured volumes. Nothing plays until
// Init and LoadAmbience succeed.
func New(cfg config.AudioConfig) *Manager {
	return &Manager{
		sampleRate:     DefaultSampleRate,
		masterVolume:   clamp(cfg.MasterVolume, 0, 1),
		ambienceVolume: clamp(cfg.AmbienceVolume, 0, 1),
		mixer:          &beep.Mixer{},
		log:            logger.Named("audio"),
	}
}

// Init opens the audio device and starts the mixer. Load the ambience
// first; an empty mixer is dropped by the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback and releases the decoded files.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	for _, t := range []*track{m.day, m.night} {
		if t != nil {
			t.source.Close()
		}
	}
	m.day, m.night = nil, nil
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// LoadAmbience decodes both WAV tracks and starts them looping. The night
// track is audible until SetDayAmount says otherwise.
func (m *Manager) LoadAmbience(dayPath, nightPath string) error {
	day, dayFormat, err := openWAV(dayPath)
	if err != nil {
		return err
	}
	night, nightFormat, err := openWAV(nightPath)
	if err != nil {
		day.Close()
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.withSpeakerLocked(func() {
		m.day = m.attach(day, dayFormat, dayPath)
		m.night = m.attach(night, nightFormat, nightPath)
		m.applyGains()
	})

	m.log.Info("ambience loaded",
		zap.String("day", dayPath),
		zap.String("night", nightPath))
	return nil
}

func openWAV(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode wav %s: %w", path, err)
	}
	return s, format, nil
}

// attach loops a decoded source, resamples it to the device rate and adds
// it to the mixer behind its own volume control.
func (m *Manager) attach(source beep.StreamSeekCloser, format beep.Format, path string) *track {
	var s beep.Streamer = &loopStreamer{source: source}
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, s)
	}
	vol := &effects.Volume{Streamer: s, Base: 10}
	m.mixer.Add(vol)
	return &track{source: source, volume: vol, path: path}
}

// SetDayAmount crossfades the ambience: 0 is all night, 1 is all day.
func (m *Manager) SetDayAmount(amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dayAmount = clamp(amount, 0, 1)
	m.withSpeakerLocked(m.applyGains)
}

// DayAmount returns the current crossfade position.
func (m *Manager) DayAmount() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dayAmount
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.withSpeakerLocked(m.applyGains)
}

// SetAmbienceVolume sets the ambience volume (0.0 to 1.0).
func (m *Manager) SetAmbienceVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ambienceVolume = clamp(vol, 0, 1)
	m.withSpeakerLocked(m.applyGains)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume
}

// GetAmbienceVolume returns the ambience volume.
func (m *Manager) GetAmbienceVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ambienceVolume
}

// withSpeakerLocked runs fn while the speaker goroutine is paused, if there
// is one.
func (m *Manager) withSpeakerLocked(fn func()) {
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func (m *Manager) applyGains() {
	level := m.masterVolume * m.ambienceVolume
	setGain(m.day, level*m.dayAmount)
	setGain(m.night, level*(1-m.dayAmount))
}

func setGain(t *track, gain float64) {
	if t == nil {
		return
	}
	if gain <= 0 {
		t.volume.Silent = true
		return
	}
	t.volume.Silent = false
	// Base 10: amplitude = 10^(dB/20)
	t.volume.Volume = volumeToDb(gain) / 20
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loopStreamer restarts its source from the beginning whenever it drains.
type loopStreamer struct {
	source beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.source.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if l.source.Len() == 0 {
				return filled, filled > 0
			}
			if err := l.source.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.source.Err()
}
