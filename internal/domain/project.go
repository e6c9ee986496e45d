package domain

// ProjectOptions is the view of one platformio.ini environment that uf2idf needs.
type ProjectOptions struct {
	Env           string // Environment name (PIOENV)
	BoardOverride string // custom_tinyuf2_board
	UploadPort    string // upload_port
	UploadSpeed   string // upload_speed
}

// platformio.ini option names.
const (
	OptionBoardOverride = "custom_tinyuf2_board"
	OptionUploadPort    = "upload_port"
	OptionUploadSpeed   = "upload_speed"
	OptionExtends       = "extends"
	OptionDefaultEnvs   = "default_envs"
)

// WorkspaceInfo describes the prepared per-board workspace.
type WorkspaceInfo struct {
	BuildDir        string
	SdkconfigPath   string // Root-level sdkconfig.<board>
	SdkconfigCopied bool   // True when this call created SdkconfigPath
}
