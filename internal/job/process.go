package job

// ProcessSpec is one invocable program parsed from a command line: its argv
// plus whichever of the three standard streams the user asked to redirect.
type ProcessSpec struct {
	Argv       []string
	InputFile  string
	OutputFile string
	ErrorFile  string
}
