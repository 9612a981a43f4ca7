package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers routes raw input to the manager and keeps the
// viewport in step with the window.
func SetupInputHandlers(app *App) {
	window := app.window
	app.input.Attach(window)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		if app.session == nil {
			return
		}
		app.session.Renderer.UpdateViewport(fbWidth, fbHeight)
		app.session.HUD.SetViewport(fbWidth, fbHeight)
	})

	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused && app.session != nil && !app.session.Paused {
			app.session.SetPaused(true)
		}
	})

	window.SetRefreshCallback(func(_ *glfw.Window) {
		app.RefreshRender()
	})
}
