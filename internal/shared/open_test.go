package shared

import (
	"strings"
	"testing"
)

func TestOpenCommand(t *testing.T) {
	original := getRuntime
	defer func() { getRuntime = original }()

	tc := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "darwin", want: "open course.json"},
		{goos: "linux", want: "xdg-open course.json"},
		{goos: "windows", want: "cmd /c start  course.json"},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			getRuntime = func() string { return tt.goos }

			cmd, err := openCommand("course.json")
			if (err != nil) != tt.wantErr {
				t.Fatalf("openCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := strings.Join(cmd.Args, " "); got != tt.want {
				t.Errorf("openCommand() args = %q, want %q", got, tt.want)
			}
		})
	}
}
