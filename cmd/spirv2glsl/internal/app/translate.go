package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shaderkit/spirvtext/glsl"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/varlist"
	"github.com/shaderkit/spirvtext/xerr"
)

var translateCmd = &cobra.Command{
	Use:   "translate <input.spv>",
	Short: "Translate a SPIR-V binary module",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().String("lang", "glsl", "output language: glsl or varlist")
	translateCmd.Flags().String("stage", "fragment", "shader stage: vertex, fragment, geometry, tesscontrol, tessevaluation, compute")
	translateCmd.Flags().Int("version", 330, "target GLSL version number, e.g. 330 or 300")
	translateCmd.Flags().Bool("es", false, "target an OpenGL ES / WebGL dialect")
	translateCmd.Flags().String("system", "", "target platform: windows, linux, macos, ios, android, html5")
	translateCmd.Flags().Bool("external-image", false, "treat sampled images as an Android external-video texture (samplerExternalOES)")
	translateCmd.Flags().String("format", "file", "varlist sink: file or print")
	translateCmd.Flags().StringP("output", "o", "--", "output path, or -- for stdout")
	translateCmd.Flags().Bool("strict", false, "abort on the first unsupported opcode instead of recovering")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	langFlag, _ := cmd.Flags().GetString("lang")
	stageFlag, _ := cmd.Flags().GetString("stage")
	versionFlag, _ := cmd.Flags().GetInt("version")
	esFlag, _ := cmd.Flags().GetBool("es")
	systemFlag, _ := cmd.Flags().GetString("system")
	formatFlag, _ := cmd.Flags().GetString("format")
	outputFlag, _ := cmd.Flags().GetString("output")
	strictFlag, _ := cmd.Flags().GetBool("strict")
	externalImageFlag, _ := cmd.Flags().GetBool("external-image")

	stage, err := parseStage(stageFlag)
	if err != nil {
		return err
	}
	tgt := target.Target{
		System:        parseSystem(systemFlag),
		Version:       versionFlag,
		ES:            esFlag,
		ExternalImage: externalImageFlag,
	}

	buf, err := os.ReadFile(args[0])
	if err != nil {
		log.WithError(err).Error("reading input")
		return err
	}

	switch langFlag {
	case "glsl":
		tgt.Language = target.LanguageGLSL
		out, tr, err := glsl.Translate(buf, tgt, stage, strictFlag)
		if err != nil {
			logTranslateError(err)
			return err
		}
		for _, d := range tr.Diagnostics {
			log.WithField("stage", stage.String()).Warn(d)
		}
		return writeOutput(outputFlag, out)

	case "varlist":
		tgt.Language = target.LanguageVarList
		_, tr, err := varlist.Translate(buf, tgt, stage)
		if err != nil {
			logTranslateError(err)
			return err
		}
		if formatFlag == "print" {
			return varlist.Print(tr.Table, stage)
		}
		return varlist.WriteFile(tr.Table, stage, outputFlag)

	default:
		return fmt.Errorf("unknown --lang %q: want glsl or varlist", langFlag)
	}
}

func logTranslateError(err error) {
	var xe *xerr.Error
	if errors.As(err, &xe) {
		log.WithFields(logrus.Fields{
			"kind":   xe.Kind.String(),
			"opcode": xe.Opcode,
			"id":     xe.ID,
		}).Error(xe.Message)
		return
	}
	log.WithError(err).Error("translation failed")
}

func parseStage(s string) (target.Stage, error) {
	switch s {
	case "vertex":
		return target.StageVertex, nil
	case "fragment":
		return target.StageFragment, nil
	case "geometry":
		return target.StageGeometry, nil
	case "tesscontrol":
		return target.StageTessControl, nil
	case "tessevaluation":
		return target.StageTessEvaluation, nil
	case "compute":
		return target.StageCompute, nil
	default:
		return 0, fmt.Errorf("unknown --stage %q", s)
	}
}

func parseSystem(s string) target.System {
	switch s {
	case "windows":
		return target.SystemWindows
	case "linux":
		return target.SystemLinux
	case "macos":
		return target.SystemMacOS
	case "ios":
		return target.SystemIOS
	case "android":
		return target.SystemAndroid
	case "html5":
		return target.SystemHTML5
	default:
		return target.SystemUnknown
	}
}

func writeOutput(path string, data []byte) error {
	if path == "--" {
		if _, err := os.Stdout.Write(data); err != nil {
			return xerr.IOFailed(err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return xerr.IOFailed(err)
	}
	return nil
}
