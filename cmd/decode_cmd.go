package cmd

import (
	"fmt"
	"os"

	"github.com/dzjyyds666/tq/parse"
	"github.com/dzjyyds666/tq/parse/toml"
	"github.com/dzjyyds666/tq/pkg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type DecodeParams struct {
	Input  string `json:"input"`  // 输入文件路径
	Output string `json:"output"` // 输出文件地址
}

var decodeParams *DecodeParams

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "decode a TOML document into toml-test tagged JSON",
	Run:   decodeRun,
}

func init() {
	decodeParams = &DecodeParams{}
	decodeCmd.Flags().StringVarP(&decodeParams.Input, "input", "i", "", "input file path, stdin by default")
	decodeCmd.Flags().StringVarP(&decodeParams.Output, "output", "o", "", "output path, stdout by default")
}

var decodeErrColor = color.New(color.FgRed, color.Bold)

func decodeRun(cmd *cobra.Command, args []string) {
	var root *toml.Table
	var err error
	if len(decodeParams.Input) > 0 {
		exist, cerr := pkg.CheckFileExist(decodeParams.Input)
		if cerr != nil {
			decodeErrColor.Fprintln(os.Stderr, "check file exist error:", cerr)
			os.Exit(1)
		}
		if !exist {
			decodeErrColor.Fprintln(os.Stderr, "input file not exist")
			os.Exit(1)
		}
		root, err = parse.DecodeFile(decodeParams.Input)
	} else {
		root, err = parse.Decode(os.Stdin)
	}
	if err != nil {
		decodeErrColor.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	data, err := toml.TaggedJSON(root)
	if err != nil {
		decodeErrColor.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if len(decodeParams.Output) > 0 {
		if werr := os.WriteFile(decodeParams.Output, append(data, '\n'), 0o644); werr != nil {
			decodeErrColor.Fprintln(os.Stderr, "write output error:", werr)
			os.Exit(1)
		}
		return
	}
	fmt.Println(string(data))
}
