package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/repositories"
	tu "github.com/desertthunder/mooc/internal/testing"
)

func TestTerminalSurface(t *testing.T) {
	t.Run("Log Prints And Records", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{})
		s := runner.newSurface(nil, "")

		s.Log("> one")
		s.Log("> two")

		if got, want := s.Lines(), []string{"> one", "> two"}; !reflect.DeepEqual(got, want) {
			t.Errorf("lines = %q, want %q", got, want)
		}
		if output.String() != "> one\n> two\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("ClearLog Keeps Printed Lines", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{})
		s := runner.newSurface(nil, "")

		s.Log("> old")
		s.ClearLog()
		s.Log("> new")

		if got, want := s.Lines(), []string{"> new"}; !reflect.DeepEqual(got, want) {
			t.Errorf("lines = %q, want %q", got, want)
		}
		if !strings.Contains(output.String(), "> old") {
			t.Error("cleared lines should stay in the output")
		}
	})

	t.Run("Save Records Artifact", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{})
		stored := seedResult(t, runner, "Go")
		artifacts := repositories.NewArtifactRepository(runner.db)
		s := runner.newSurface(artifacts, stored.ID)

		path, err := s.Save(models.Artifact{Kind: "json", Name: "course.json", Data: []byte("{}")})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		tu.AssertFileExists(t, path)

		records, err := artifacts.ListByResult(stored.ID)
		if err != nil {
			t.Fatalf("ListByResult failed: %v", err)
		}
		if len(records) != 1 || records[0].Path != path {
			t.Errorf("expected one record for %s, got %+v", path, records)
		}
	})
}
