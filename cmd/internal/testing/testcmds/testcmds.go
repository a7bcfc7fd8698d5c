package testcmds

import (
	"embed"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sig-kill/lyrtag/tags"
)

//go:embed testdata/responses
var responses embed.FS

func RegisterTransport() {
	var t http.Transport
	t.RegisterProtocol("file", http.NewFileTransportFS(responses))

	os.Setenv("LYRTAG_GENIUS_BASE_URL", "file:///testdata/responses/genius")
	os.Setenv("LYRTAG_GENIUS_RATE_LIMIT", "0")
	os.Setenv("LYRTAG_OVH_BASE_URL", "file:///testdata/responses/ovh")
	os.Setenv("LYRTAG_OVH_RATE_LIMIT", "0")

	http.DefaultTransport = &t
	http.DefaultClient.Transport = &t
}

func Tag() {
	flag.Parse()

	op := flag.Arg(0)
	switch op {
	case "write", "check", "contains":
	default:
		log.Fatalf("bad op %s", op)
	}

	path := flag.Arg(1)
	if path == "" {
		log.Fatalf("no path")
	}
	pairs := flag.Args()[2:]
	if len(pairs)%2 != 0 {
		log.Fatalf("pairs should be key value")
	}

	if op == "write" {
		if err := ensureMP3(path); err != nil {
			log.Fatalf("ensure mp3: %v", err)
		}
	}

	f, err := tags.Read(path)
	if err != nil {
		log.Fatalf("open tag file: %v", err)
	}

	var exit int
	for i := 0; i < len(pairs); i += 2 {
		k, v := pairs[i], pairs[i+1]
		switch op {
		case "write":
			f.Write(k, v)
		case "check":
			if got := f.Read(k); got != v {
				log.Printf("%s %s exp %q got %q", path, k, v, got)
				exit = 1
			}
		case "contains":
			if got := f.Read(k); !strings.Contains(got, v) {
				log.Printf("%s %s doesn't contain %q, got %q", path, k, v, got)
				exit = 1
			}
		}
	}

	if op == "write" {
		if err := f.Save(); err != nil {
			log.Fatalf("write tag file: %v", err)
		}
	}
	f.Close()

	os.Exit(exit)
}

func Corrupt() {
	flag.Parse()

	data := append([]byte("ID3\x03\x00\x00\xff\xff\xff\xff"), make([]byte, 32)...)
	for _, p := range flag.Args() {
		if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
			log.Fatalf("make parents: %v", err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			log.Fatalf("write corrupt file: %v", err)
		}
	}
}

var emptyMP3 = append([]byte{0xff, 0xfb, 0x90, 0x44}, make([]byte, 412)...)

func ensureMP3(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, emptyMP3, 0o644)
}
