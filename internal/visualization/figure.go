// Package visualization builds Plotly-compatible chart specifications.
package visualization

// Figure is a chart specification the frontend renders with Plotly
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted series
type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	Mode          string      `json:"mode,omitempty"`
	X             interface{} `json:"x,omitempty"`
	Y             interface{} `json:"y,omitempty"`
	Z             interface{} `json:"z,omitempty"`
	NBinsX        int         `json:"nbinsx,omitempty"`
	HistNorm      string      `json:"histnorm,omitempty"`
	BoxMean       string      `json:"boxmean,omitempty"`
	Opacity       float64     `json:"opacity,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	Line          *Line       `json:"line,omitempty"`
	Text          interface{} `json:"text,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	TextTemplate  string      `json:"texttemplate,omitempty"`
	TextFont      *Font       `json:"textfont,omitempty"`
	ColorScale    string      `json:"colorscale,omitempty"`
	ZMid          *float64    `json:"zmid,omitempty"`
	ColorBar      *ColorBar   `json:"colorbar,omitempty"`
}

// Marker styles points and bars
type Marker struct {
	Color   string  `json:"color,omitempty"`
	Size    int     `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Line    *Line   `json:"line,omitempty"`
}

// Line styles lines and outlines
type Line struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
	Dash  string `json:"dash,omitempty"`
}

// Font sets text size
type Font struct {
	Size int `json:"size"`
}

// ColorBar labels a color scale
type ColorBar struct {
	Title Title `json:"title"`
}

// Title is a text label
type Title struct {
	Text string `json:"text"`
}

// Axis configures one axis
type Axis struct {
	Title Title `json:"title"`
}

// Annotation is a text box placed on the chart
type Annotation struct {
	Text        string  `json:"text"`
	XRef        string  `json:"xref"`
	YRef        string  `json:"yref"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ShowArrow   bool    `json:"showarrow"`
	BgColor     string  `json:"bgcolor,omitempty"`
	BorderColor string  `json:"bordercolor,omitempty"`
	BorderWidth int     `json:"borderwidth,omitempty"`
	XAnchor     string  `json:"xanchor,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	Font        *Font   `json:"font,omitempty"`
}

// Layout configures the chart frame
type Layout struct {
	Title       Title        `json:"title"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Template    string       `json:"template,omitempty"`
	Height      int          `json:"height,omitempty"`
	Width       int          `json:"width,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

const (
	template     = "plotly_white"
	primaryColor = "#3b82f6"
	outlineColor = "#1e40af"
	accentColor  = "#ef4444"
)

func axis(title string) *Axis {
	return &Axis{Title: Title{Text: title}}
}

func boolPtr(b bool) *bool {
	return &b
}
