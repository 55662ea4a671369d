package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/handrunner/internal/app"
	"github.com/ayusman/handrunner/internal/config"
	"github.com/ayusman/handrunner/internal/score"
	"github.com/ayusman/handrunner/internal/server"
	"github.com/ayusman/handrunner/internal/tray"
)

func main() {
	fmt.Println("Handrunner - Gesture Controlled Runner")

	cfg := config.Load()

	// Score persistence degrades to memory-only when the database cannot
	// be opened.
	var repo *score.ScoreRepository
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Printf("Failed to create data directory, scores will not persist: %v", err)
	} else if st, err := score.NewStore(cfg.DBPath); err != nil {
		log.Printf("Failed to open score store, scores will not persist: %v", err)
	} else {
		defer st.Close()
		repo = st.Scores()
	}
	recorder := score.NewRecorder(repo)

	a := app.New(app.Config{
		Scores:       recorder,
		CameraID:     cfg.CameraID,
		MotionThresh: cfg.MotionThreshold,
		NoCamera:     cfg.NoCamera,
		Rich:         cfg.Rich,
	})
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start game pipeline: %v", err)
	}
	defer a.Stop()

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		App:       a,
		Scores:    recorder,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnOpen(func() { openBrowser(gameURL(cfg.Addr)) })
	t.OnQuit(func() {})
	t.SetBest(recorder.Best())

	// Blocks until quit is selected from the tray menu.
	t.Run()
}

// gameURL turns a listen address into a browser URL.
func gameURL(addr string) string {
	if addr != "" && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handrunner/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handrunner", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
