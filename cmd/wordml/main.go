package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/docxforge/wordml/pkg/wordml"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "fields":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		if err := listFields(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "dump":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		if err := dumpDocument(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Println("wordml version 0.1.0")
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("wordml - WordprocessingML inspection tool")
	fmt.Println("\nUsage: wordml <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  fields <file.docx>    List field instructions in the document")
	fmt.Println("  dump <file.docx>      Print the main document XML")
	fmt.Println("  version               Show version information")
}

func listFields(path string) error {
	reader, err := wordml.OpenFile(path)
	if err != nil {
		return err
	}
	data, err := reader.DocumentXML()
	if err != nil {
		return err
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	simple, err := xmlquery.QueryAll(doc, "//*[local-name()='fldSimple']")
	if err != nil {
		return err
	}
	for _, n := range simple {
		fmt.Printf("simple\t%s\n", strings.TrimSpace(n.SelectAttr("w:instr")))
	}

	complexInstr, err := xmlquery.QueryAll(doc, "//*[local-name()='instrText']")
	if err != nil {
		return err
	}
	for _, n := range complexInstr {
		fmt.Printf("complex\t%s\n", strings.TrimSpace(n.InnerText()))
	}
	return nil
}

func dumpDocument(path string) error {
	reader, err := wordml.OpenFile(path)
	if err != nil {
		return err
	}
	data, err := reader.DocumentXML()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
