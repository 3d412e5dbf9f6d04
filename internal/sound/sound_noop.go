//go:build ci

package sound

const (
	CueRoundStart = "round_start"
	CueRoundEnd   = "round_end"
	CueWin        = "win"
)

type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(name string) {
	// No-op
}

func (sm *SoundManager) Close() {
	// No-op
}
