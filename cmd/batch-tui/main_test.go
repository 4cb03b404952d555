package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/tui/grid"
)

func TestHandoffFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		want    enquiry.Fields
		pending bool
		wantErr bool
	}{
		{name: "no flags", opts: options{}},
		{
			name:    "batch instance and status",
			opts:    options{batchInstance: 77, status: "Forced OK"},
			want:    enquiry.Fields{BatchInstanceID: "77", Status: "forced_ok"},
			pending: true,
		},
		{
			name:    "job instance",
			opts:    options{jobInstance: 1042},
			want:    enquiry.Fields{JobInstanceID: "1042"},
			pending: true,
		},
		{name: "bad status", opts: options{status: "sleeping"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.opts.handoff()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("handoff: %v", err)
			}
			if h.Pending() != tt.pending {
				t.Fatalf("Pending() = %v, want %v", h.Pending(), tt.pending)
			}
			got, _ := h.Take()
			if got != tt.want {
				t.Errorf("fields = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]model.JobInstance{
		{ID: 1042, JobName: "LOAD", Status: model.StatusFailed, BatchName: "EOD", BatchInstanceID: 77},
	})
	for _, want := range []string{"ID", "STATUS", "1042", "LOAD", "Failed", "EOD", "77", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := renderTable(nil); got != grid.EmptyMessage {
		t.Errorf("renderTable(nil) = %q", got)
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "batch-tui ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestListCmd(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/job-instances" {
			http.NotFound(w, r)
			return
		}
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.JobInstancesResponse{
			TotalCount:   1,
			JobInstances: []model.JobInstance{{ID: 9, JobName: "EXTRACT", Status: model.StatusFailed}},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	yaml := "log:\n  file: " + filepath.Join(dir, "batch-tui.log") + "\nenquiry:\n  limit: 25\n"
	if err := os.WriteFile(cfgFile, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "--config", cfgFile, "--server", srv.URL, "--token", "t0ken", "--status", "failed"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}

	if !strings.Contains(query, "status=failed") || !strings.Contains(query, "limit=25") {
		t.Errorf("query = %q", query)
	}
	if !strings.Contains(out.String(), "EXTRACT") {
		t.Errorf("output missing row:\n%s", out.String())
	}
}

func TestListCmdRequiresServer(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("log:\n  file: "+filepath.Join(dir, "x.log")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BATCH_TUI_SERVER_URL", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "--config", cfgFile})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "server url") {
		t.Errorf("expected missing server error, got %v", err)
	}
}
