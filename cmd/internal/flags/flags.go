package flags

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.senan.xyz/flagconf"

	lyrtag "github.com/sig-kill/lyrtag"
	"github.com/sig-kill/lyrtag/lyrics"
	"github.com/sig-kill/lyrtag/notifications"
)

func EnvPrefix(prefix string) {
	flagconf.ReadEnvPrefix = func(_ *flag.FlagSet) string {
		return prefix
	}
}

func Parse() {
	userConfig, _ := os.UserConfigDir()
	defaultConfigPath := filepath.Join(userConfig, lyrtag.Name, "config")
	configPath := flag.String("config-path", defaultConfigPath, "path config file")

	printVersion := flag.Bool("version", false, "print the version")
	printConfig := flag.Bool("config", false, "print the parsed config")

	flag.TextVar(&logLevel, "log-level", &logLevel, "set the logging level")

	flag.Parse()
	flagconf.ParseEnv()
	flagconf.ParseConfig(*configPath)

	if *printVersion {
		fmt.Printf("%s %s\n", flag.CommandLine.Name(), lyrtag.Version)
		os.Exit(0)
	}
	if *printConfig {
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("%-16s %s\n", f.Name, f.Value)
		})
		os.Exit(0)
	}
}

// Lyrics returns the source chain, genius first then lyrics.ovh. Without a
// genius token the genius source is a no-op and everything falls through to
// lyrics.ovh.
func Lyrics() lyrics.MultiSource {
	var genius lyrics.Genius
	genius.HTTPClient = http.DefaultClient
	flag.StringVar(&genius.Token, "genius-token", "", "genius api token enabling the genius source")
	flag.StringVar(&genius.BaseURL, "genius-base-url", `https://api.genius.com`, "genius base url")
	flag.DurationVar(&genius.RateLimit, "genius-rate-limit", 500*time.Millisecond, "genius rate limit duration")

	var ovh lyrics.LyricsOVH
	ovh.HTTPClient = http.DefaultClient
	flag.StringVar(&ovh.BaseURL, "ovh-base-url", `https://api.lyrics.ovh/v1`, "lyrics.ovh base url")
	flag.DurationVar(&ovh.RateLimit, "ovh-rate-limit", 0, "lyrics.ovh rate limit duration")

	return lyrics.MultiSource{&genius, &ovh}
}

func Notifications() *notifications.Notifications {
	var r notifications.Notifications
	flag.Var(&notificationsParser{&r}, "notification-uri", "add a shoutrrr notification uri for an event")
	return &r
}
