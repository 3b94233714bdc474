package model

// DisplayMode controls how the current word is shown.
type DisplayMode string

// Display modes.
const (
	DisplayLetterByLetter DisplayMode = "letter-by-letter"
	DisplayFullWord       DisplayMode = "full-word"
)

// LetterDirection controls where letters appear in letter-by-letter mode.
type LetterDirection string

// Letter directions. Center shows only the next letter in place; flow lays
// letters out left to right as they are typed.
const (
	DirectionCenter LetterDirection = "center"
	DirectionFlow   LetterDirection = "flow"
)

// Word length bounds accepted by settings and frantic mode.
const (
	MinWordLengthLimit = 1
	MaxWordLengthLimit = 30
)

// Settings is the full game configuration.
type Settings struct {
	Speed                  float64     `toml:"speed" yaml:"speed" validate:"gte=0"`
	SameLetterDelayPercent float64     `toml:"same-letter-delay-percent" yaml:"same-letter-delay-percent" validate:"gte=0,lte=100"`
	ExcludeLetters         string      `toml:"exclude-letters" yaml:"exclude-letters"`
	DisplayMode            DisplayMode `toml:"display-mode" yaml:"display-mode" validate:"oneof=letter-by-letter full-word"`
	MinWordLength          int         `toml:"min-word-length" yaml:"min-word-length" validate:"gte=1,lte=30"`
	MaxWordLength          int         `toml:"max-word-length" yaml:"max-word-length" validate:"gte=1,lte=30,gtefield=MinWordLength"`

	JoinRandomLetters    bool    `toml:"join-random-letters" yaml:"join-random-letters"`
	MixJoinRandomLetters bool    `toml:"mix-join-random-letters" yaml:"mix-join-random-letters"`
	MixWordChance        float64 `toml:"mix-word-chance" yaml:"mix-word-chance" validate:"gte=0,lte=1"`

	FranticMode bool         `toml:"frantic-mode" yaml:"frantic-mode"`
	Frantic     FranticFlags `toml:"frantic" yaml:"frantic"`

	LetterStyle LetterStyle `toml:"letter-style" yaml:"letter-style"`
	Voice       Voice       `toml:"voice" yaml:"voice"`
	WordMix     WordMix     `toml:"word-mix" yaml:"word-mix"`

	HideProgressBar                          bool `toml:"hide-progress-bar" yaml:"hide-progress-bar"`
	HideTimer                                bool `toml:"hide-timer" yaml:"hide-timer"`
	RestartLevelOnError                      bool `toml:"restart-level-on-error" yaml:"restart-level-on-error"`
	ShowNewWordOnError                       bool `toml:"show-new-word-on-error" yaml:"show-new-word-on-error"`
	HideTypedLetter                          bool `toml:"hide-typed-letter" yaml:"hide-typed-letter"`
	NoFeedbackSound                          bool `toml:"no-feedback-sound" yaml:"no-feedback-sound"`
	RandomlyMoveWordStarting                 bool `toml:"randomly-move-word-starting" yaml:"randomly-move-word-starting"`
	TypeRestartLevelOnErrorOnLevelCompletion bool `toml:"toggle-restart-on-level-completion" yaml:"toggle-restart-on-level-completion"`
	SaveStats                                bool `toml:"save-stats" yaml:"save-stats"`
}

// FranticFlags selects which settings frantic mode may randomize.
type FranticFlags struct {
	DisplayMode         bool `toml:"display-mode" yaml:"display-mode"`
	LetterStyle         bool `toml:"letter-style" yaml:"letter-style"`
	ProgressBar         bool `toml:"progress-bar" yaml:"progress-bar"`
	Timer               bool `toml:"timer" yaml:"timer"`
	RestartLevelOnError bool `toml:"restart-level-on-error" yaml:"restart-level-on-error"`
	MoveWordStarting    bool `toml:"move-word-starting" yaml:"move-word-starting"`
	HideTypedLetter     bool `toml:"hide-typed-letter" yaml:"hide-typed-letter"`
	WordLength          bool `toml:"word-length" yaml:"word-length"`
}

// LetterStyle toggles per-letter visual randomization.
type LetterStyle struct {
	RandomSize      bool            `toml:"random-size" yaml:"random-size"`
	RandomWeight    bool            `toml:"random-weight" yaml:"random-weight"`
	RandomFont      bool            `toml:"random-font" yaml:"random-font"`
	RandomTransform bool            `toml:"random-transform" yaml:"random-transform"`
	RandomColor     bool            `toml:"random-color" yaml:"random-color"`
	Direction       LetterDirection `toml:"direction" yaml:"direction" validate:"oneof=center flow"`
}

// Voice toggles spoken feedback cues.
type Voice struct {
	SayCurrentWord bool `toml:"say-current-word" yaml:"say-current-word"`
	FocusOnVoice   bool `toml:"focus-on-voice" yaml:"focus-on-voice"`
	FocusOnLetter  bool `toml:"focus-on-letter" yaml:"focus-on-letter"`
}

// WordMix controls the character pool of synthesized words.
type WordMix struct {
	IncludeNumbers   bool `toml:"include-numbers" yaml:"include-numbers"`
	IncludeDash      bool `toml:"include-dash" yaml:"include-dash"`
	IncludeUppercase bool `toml:"include-uppercase" yaml:"include-uppercase"`
	IncludeLowercase bool `toml:"include-lowercase" yaml:"include-lowercase"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		Speed:                  2,
		SameLetterDelayPercent: 60,
		DisplayMode:            DisplayLetterByLetter,
		MinWordLength:          MinWordLengthLimit,
		MaxWordLength:          MaxWordLengthLimit,
		MixWordChance:          0.2,
		LetterStyle: LetterStyle{
			RandomSize:      true,
			RandomWeight:    true,
			RandomFont:      true,
			RandomTransform: true,
			RandomColor:     true,
			Direction:       DirectionCenter,
		},
		Voice: Voice{
			FocusOnLetter: true,
		},
		WordMix: WordMix{
			IncludeNumbers:   true,
			IncludeLowercase: true,
		},
		RestartLevelOnError:                      true,
		ShowNewWordOnError:                       true,
		RandomlyMoveWordStarting:                 true,
		TypeRestartLevelOnErrorOnLevelCompletion: true,
		SaveStats:                                true,
	}
}
