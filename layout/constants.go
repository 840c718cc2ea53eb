package layout

// Geometry of the browser window and the fixed-width text metric.
const (
	WindowWidth    int64 = 600
	WindowHeight   int64 = 400
	WindowPadding  int64 = 5
	TitleBarHeight int64 = 24
	ToolbarHeight  int64 = 26

	ContentAreaWidth  = WindowWidth - WindowPadding*2
	ContentAreaHeight = WindowHeight - TitleBarHeight - ToolbarHeight - WindowPadding*2

	CharWidth             int64 = 8
	CharHeight            int64 = 16
	CharHeightWithPadding       = CharHeight + 4
)
