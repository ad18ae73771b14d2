package static

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFSContainsAssets(t *testing.T) {
	for _, name := range []string{"admin.css", "admin.js"} {
		data, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestScriptReappliesLastFeedPositionAfterSwap(t *testing.T) {
	data, err := fs.ReadFile(FS, "admin.js")
	if err != nil {
		t.Fatalf("read admin.js: %v", err)
	}
	script := string(data)
	setup := script[strings.Index(script, "function setup()"):]
	setup = setup[:strings.Index(setup, "\n  }\n")]
	if !strings.Contains(setup, "showPosition(lastPosition)") {
		t.Fatalf("setup does not restore the last feed position:\n%s", setup)
	}
	initMap := script[strings.Index(script, "function initMap("):]
	initMap = initMap[:strings.Index(initMap, "\n  }\n")]
	if !strings.Contains(initMap, "showPosition(lastPosition)") {
		t.Fatalf("initMap does not restore the last feed position:\n%s", initMap)
	}
}
