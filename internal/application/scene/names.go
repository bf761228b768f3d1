package scene

// Names of the bundled scenes.
const (
	MainMenu         = "main_menu"
	Game             = "game"
	Pause            = "pause"
	Options          = "options"
	OptionsFromPause = "options_from_pause"
	Credits          = "credits"
	GameOver         = "game_over"
)

// Parameter keys understood by the bundled scenes.
const (
	ParamNewMatch   = "new_match"   // bool, game
	ParamFinalScore = "final_score" // int, game_over
	ParamWin        = "win"         // bool, game_over
)
