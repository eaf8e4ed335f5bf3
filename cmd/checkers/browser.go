package main

import (
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// browserURL turns a listen address into a local URL for the static pages.
func browserURL(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	return "http://" + host + "/web/"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}
	// headless machines have no opener
	if err := cmd.Start(); err != nil {
		log.Debug().Err(err).Str("url", url).Msg("could not open browser")
	}
}

// openBrowserSoon gives the listener a moment before the browser connects.
func openBrowserSoon(url string) {
	go func() {
		time.Sleep(100 * time.Millisecond)
		openBrowser(url)
	}()
}
