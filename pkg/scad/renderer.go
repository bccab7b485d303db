package scad

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Render meshes an OpenSCAD program file into outputFile using the
// openscad binary. The output format follows the file extension, as
// interpreted by openscad itself.
func Render(scadFile, outputFile string) error {
	// Check if OpenSCAD is installed
	if _, err := exec.LookPath("openscad"); err != nil {
		return fmt.Errorf("openscad not found in PATH. Install OpenSCAD from https://openscad.org/ or export a .scad file instead")
	}

	cmd := exec.Command("openscad", "-o", outputFile, scadFile)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// If error occurred, display output
	if err != nil {
		var errMsg strings.Builder
		errMsg.WriteString(fmt.Sprintf("failed to render %s: %v\n", scadFile, err))
		if stderr.Len() > 0 {
			errMsg.WriteString("stderr: ")
			errMsg.WriteString(stderr.String())
		}
		if stdout.Len() > 0 {
			errMsg.WriteString("stdout: ")
			errMsg.WriteString(stdout.String())
		}
		return fmt.Errorf("%s", errMsg.String())
	}

	return nil
}
