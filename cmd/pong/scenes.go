package main

import (
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/application/scene/menu"
	"github.com/younwookim/pongkit/internal/application/scene/pong"
)

// registerScenes installs every scene of the game under its well-known name.
func registerScenes(svc *scene.Services, seed int64) {
	m := svc.Scenes
	m.Register(scene.MainMenu, menu.NewMainMenu(svc))
	m.Register(scene.Game, pong.NewSeeded(svc, seed))
	m.Register(scene.Pause, menu.NewPause(svc))
	m.Register(scene.Options, menu.NewOptions(svc, scene.MainMenu))
	m.Register(scene.OptionsFromPause, menu.NewOptions(svc, scene.Pause))
	m.Register(scene.Credits, menu.NewCredits(svc))
	m.Register(scene.GameOver, menu.NewGameOver(svc))
}
