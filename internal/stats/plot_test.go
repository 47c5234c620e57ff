package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Watch time (minutes)", []Series{
		{Name: "videos", Values: []float64{10, 20, 30, 20, 10, 0, 5}},
		{Name: "playlists", Values: []float64{0, 5, 5, 10, 0, 0, 0}},
	}, 14, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Watch time (minutes)") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+4+1 {
		t.Fatalf("expected 6 lines of output, got %d", len(lines))
	}
}

func TestPlotSeriesSkipsEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Empty", []Series{{Name: "nothing"}}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestValueToRowSharedScale(t *testing.T) {
	// 8 dot rows, max 40: zero sits on the bottom row, max on the top.
	if row := valueToRow(0, 40, 8); row != 7 {
		t.Fatalf("zero value row = %d, want 7", row)
	}
	if row := valueToRow(40, 40, 8); row != 0 {
		t.Fatalf("max value row = %d, want 0", row)
	}
	if row := valueToRow(20, 40, 8); row != 4 {
		t.Fatalf("mid value row = %d, want 4", row)
	}
	if row := valueToRow(-3, 40, 8); row != 7 {
		t.Fatalf("negative value row = %d, want 7", row)
	}
}

func TestMakeAxisLabels(t *testing.T) {
	labels := makeAxisLabels(4, 30)
	if labels[0] != "30.0m" {
		t.Fatalf("top label = %q, want 30.0m", labels[0])
	}
	if labels[2] != "15.0m" {
		t.Fatalf("mid label = %q, want 15.0m", labels[2])
	}
	if labels[3] != "0m" {
		t.Fatalf("bottom label = %q, want 0m", labels[3])
	}
}

func TestResampleSeries(t *testing.T) {
	same := resampleSeries([]float64{1, 2, 3}, 3)
	if len(same) != 3 || same[0] != 1 || same[2] != 3 {
		t.Fatalf("identity resample changed values: %v", same)
	}

	down := resampleSeries([]float64{1, 1, 3, 3}, 2)
	if len(down) != 2 || down[0] != 1 || down[1] != 3 {
		t.Fatalf("downsample averages wrong: %v", down)
	}

	up := resampleSeries([]float64{0, 10}, 3)
	if len(up) != 3 || up[0] != 0 || up[1] != 5 || up[2] != 10 {
		t.Fatalf("upsample interpolation wrong: %v", up)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if w := PlotWidthFor(80); w != 80-axisLabelWidth-3 {
		t.Fatalf("unexpected width for 80 columns: %d", w)
	}
	if w := PlotWidthFor(5); w != minPlotWidth {
		t.Fatalf("narrow terminal should clamp to min width, got %d", w)
	}
	if w := PlotWidthFor(0); w != minPlotWidth {
		t.Fatalf("unknown terminal should clamp to min width, got %d", w)
	}
}
