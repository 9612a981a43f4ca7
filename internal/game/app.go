package game

import (
	"log/slog"
	"time"

	"blockworld/internal/input"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	slowFrame      = 16 * time.Millisecond
	profileEvery   = time.Second
	profileTopSize = 5
)

// App runs the client frame loop around one Session.
type App struct {
	window  *glfw.Window
	input   *input.Manager
	session *Session
	log     *slog.Logger

	fpsLimiter  *FPSLimiter
	lastTime    time.Time
	lastProfile time.Time
	frames      int
	fps         int
}

// NewApp creates the session and installs window callbacks.
func NewApp(window *glfw.Window, opts world.Options, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	s, err := NewSession(window, opts, log)
	if err != nil {
		return nil, err
	}
	a := &App{
		window:      window,
		input:       input.NewManager(),
		session:     s,
		log:         log,
		fpsLimiter:  NewFPSLimiter(),
		lastTime:    time.Now(),
		lastProfile: time.Now(),
	}
	SetupInputHandlers(a)
	return a, nil
}

// Run loops until the window is asked to close.
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

// Close releases the session.
func (a *App) Close() {
	if a.session != nil {
		a.session.Cleanup()
		a.session = nil
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	s := a.session
	func() { defer profiling.Track("session.Update")(); s.Update(dt, a.input) }()
	s.Render(dt, a.input)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	elapsed := time.Since(start)
	s.Metrics().ObserveFrame(elapsed)
	if elapsed > slowFrame {
		a.log.Warn("Slow frame", "duration", elapsed, "top", profiling.TopN(profileTopSize))
	}

	a.frames++
	if time.Since(a.lastProfile) >= profileEvery {
		a.fps = a.frames
		a.frames = 0
		a.lastProfile = time.Now()
		a.log.Debug("Frame profile", "fps", a.fps, "top", profiling.TopN(profileTopSize))
	}
	s.HUD.SetProfile(a.fps, profiling.Snapshot())

	a.input.PostUpdate()
	a.fpsLimiter.Wait(s.Paused)
}

// RefreshRender repaints without advancing the simulation, for resizes.
func (a *App) RefreshRender() {
	if a.session == nil {
		return
	}
	a.session.Render(0.016, a.input)
	a.window.SwapBuffers()
}
