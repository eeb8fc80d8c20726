// Package main is the entry point for the ambitus CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Pietzcker/ambitus/pkg/api"
	"github.com/Pietzcker/ambitus/pkg/midifile"
	"github.com/Pietzcker/ambitus/pkg/notation"
	"github.com/Pietzcker/ambitus/pkg/pitch"
	"github.com/Pietzcker/ambitus/pkg/scale"
	"github.com/Pietzcker/ambitus/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	scalesFile string
	outputFile string
	serverPort int
	tempo      float64

	clefName   string
	keyName    string
	headName   string
	stemless   bool
	separator  string
	spacer     string
	terminator string
	reverse    bool
)

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347"))

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ambitus",
	Short: "Build scales and write them in the Ambitus music font",
	Long: `ambitus builds diatonic scales from a starting pitch and encodes each
note as a glyph of the Ambitus font for a clef and key signature.

Pitches are written as letter, optional accidental (b or #) and octave 1-6;
middle C is C4.

Examples:
  ambitus scale dorian D3
  ambitus glyphs major C4 C5 --clef treble --key c
  ambitus glyphs minor A2 --clef bass --key am --head h --stemless
  ambitus midi lydian F4 -o lydian.mid
  ambitus render tune.mid --key f
  ambitus tui
  ambitus serve --port 8080`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage: true,
}

var scaleCmd = &cobra.Command{
	Use:   "scale <name> <start> [stop]",
	Short: "List the pitches of a scale",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runScale,
}

var glyphsCmd = &cobra.Command{
	Use:   "glyphs <name> <start> [stop]",
	Short: "Encode a scale as Ambitus glyphs",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runGlyphs,
}

var midiCmd = &cobra.Command{
	Use:   "midi <name> <start> [stop]",
	Short: "Export a scale as a MIDI file",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runMIDI,
}

var renderCmd = &cobra.Command{
	Use:   "render <input.mid>",
	Short: "Encode the notes of a MIDI file as Ambitus glyphs",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available scales",
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the key signatures",
	Args:  cobra.NoArgs,
	Run:   runKeys,
}

var clefsCmd = &cobra.Command{
	Use:   "clefs",
	Short: "List the clefs and their ranges",
	Args:  cobra.NoArgs,
	Run:   runClefs,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive scale builder",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&scalesFile, "scales", "", "TOML file with extra scale presets")

	// glyphs and render share the formatting flags
	for _, cmd := range []*cobra.Command{glyphsCmd, renderCmd} {
		cmd.Flags().StringVarP(&clefName, "clef", "c", notation.Treble.Name, "Clef (treble, bass, alto, tenor)")
		cmd.Flags().StringVarP(&keyName, "key", "k", notation.CMajor.Name, "Key signature (c, f, bb, ..., am, dm, ...)")
		cmd.Flags().StringVar(&headName, "head", string(notation.Quarter), "Note head (q, h, w)")
		cmd.Flags().BoolVar(&stemless, "stemless", false, "Remove stems from q and h heads")
		cmd.Flags().StringVar(&separator, "sep", notation.DefaultSeparator, "Separator between notes")
		cmd.Flags().StringVar(&spacer, "spacer", "", "Spacing between the clef and the first note")
		cmd.Flags().StringVar(&terminator, "end", notation.DefaultTerminator, "Characters after the last note")
		cmd.Flags().BoolVar(&reverse, "reverse", false, "Write the notes in descending order")
	}

	// midi command
	midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")
	midiCmd.Flags().Float64Var(&tempo, "tempo", 120, "Tempo in BPM")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(glyphsCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(clefsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getCatalog() (*scale.Catalog, error) {
	if scalesFile == "" {
		return scale.DefaultCatalog(), nil
	}
	return scale.LoadCatalogFile(scalesFile)
}

// buildScale resolves name, start and optional stop from the arguments.
func buildScale(args []string) ([]pitch.Pitch, error) {
	catalog, err := getCatalog()
	if err != nil {
		return nil, err
	}
	pattern, err := catalog.Lookup(args[0])
	if err != nil {
		return nil, err
	}
	start, err := pitch.Parse(args[1])
	if err != nil {
		return nil, err
	}
	stop := scale.DefaultStop(start)
	if len(args) > 2 {
		if stop, err = pitch.Parse(args[2]); err != nil {
			return nil, err
		}
	}
	return scale.BuildChecked(pattern, start, stop)
}

func getFormatter() (*notation.Formatter, error) {
	clef, err := notation.LookupClef(clefName)
	if err != nil {
		return nil, err
	}
	key, err := notation.LookupKey(keyName)
	if err != nil {
		return nil, err
	}
	head, err := notation.ParseNoteHead(headName)
	if err != nil {
		return nil, err
	}
	return &notation.Formatter{
		Encoder:    notation.Encoder{Clef: clef, Key: key, Head: head, Stemless: stemless},
		Separator:  separator,
		Spacer:     spacer,
		Terminator: terminator,
		Reverse:    reverse,
		OnSkip: func(p pitch.Pitch, err error) {
			fmt.Fprintln(os.Stderr, warnStyle.Render("warning: "+err.Error()))
		},
	}, nil
}

func runScale(cmd *cobra.Command, args []string) error {
	notes, err := buildScale(args)
	if err != nil {
		return err
	}
	fmt.Println("Scale:", notes)
	return nil
}

func runGlyphs(cmd *cobra.Command, args []string) error {
	f, err := getFormatter()
	if err != nil {
		return err
	}
	notes, err := buildScale(args)
	if err != nil {
		return err
	}
	line, err := f.Format(notes)
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

func runMIDI(cmd *cobra.Command, args []string) error {
	notes, err := buildScale(args)
	if err != nil {
		return err
	}
	output := outputFile
	if output == "" {
		output = fmt.Sprintf("%s-%s.mid", strings.ToLower(args[0]), notes[0])
	}

	exp := midifile.NewExporter()
	exp.Tempo = tempo
	if err := exp.WriteFile(notes, output); err != nil {
		return err
	}

	fmt.Printf("Wrote %d notes to %s\n", len(notes), output)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	f, err := getFormatter()
	if err != nil {
		return err
	}
	midiNotes, err := midifile.ReadFile(args[0])
	if err != nil {
		return err
	}
	notes, err := midifile.Spell(midiNotes, f.Key)
	if err != nil {
		return err
	}
	line, err := f.Format(notes)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %v\n", filepath.Base(args[0]), notes)
	fmt.Println(line)
	return nil
}

func runModes(cmd *cobra.Command, args []string) error {
	catalog, err := getCatalog()
	if err != nil {
		return err
	}
	for _, name := range catalog.Names() {
		p, _ := catalog.Lookup(name)
		fmt.Printf("%-16s %v\n", name, p)
	}
	return nil
}

func runKeys(cmd *cobra.Command, args []string) {
	for _, name := range notation.KeyNames() {
		k, _ := notation.LookupKey(name)
		fmt.Printf("%-4s %s\n", name, notation.Header(notation.Treble, k)[1:])
	}
}

func runClefs(cmd *cobra.Command, args []string) {
	for _, c := range notation.Clefs() {
		fmt.Printf("%-7s %s  %v-%v  middle line %v\n", c.Name, c.Glyph, c.Low, c.High, c.Middle)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	catalog, err := getCatalog()
	if err != nil {
		return err
	}
	return tui.Run(catalog)
}

func runServe(cmd *cobra.Command, args []string) error {
	catalog, err := getCatalog()
	if err != nil {
		return err
	}
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort, catalog)
}
