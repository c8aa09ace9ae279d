// Package main applies a saved crop result to an image file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"github.com/frudas24/zoomkit/internal/imgcrop"
	"github.com/frudas24/zoomkit/internal/store"
)

// main is the entrypoint for the zoomcrop tool.
func main() {
	imagePath := flag.String("image", "", "Source image path")
	resultPath := flag.String("result", "", "Crop result JSON (as returned by /api/crop)")
	storePath := flag.String("store", "", "Crop store JSON; use with -id instead of -result")
	id := flag.String("id", "", "Editor id inside -store")
	outPath := flag.String("out", "", "Output image path; format follows the extension")
	flag.Parse()

	if err := run(*imagePath, *resultPath, *storePath, *id, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "zoomcrop: %v\n", err)
		os.Exit(1)
	}
}

// run loads the inputs, applies the crop and writes the output.
func run(imagePath, resultPath, storePath, id, outPath string) error {
	if imagePath == "" || outPath == "" {
		return errors.New("-image and -out are required")
	}
	src, err := imgcrop.Open(imagePath)
	if err != nil {
		return err
	}

	var entry store.Entry
	switch {
	case resultPath != "":
		entry.Result, err = store.LoadResult(resultPath)
		if err != nil {
			return err
		}
	case storePath != "" && id != "":
		data, err := store.Load(storePath)
		if err != nil {
			return err
		}
		var ok bool
		entry, ok = data[id]
		if !ok {
			return fmt.Errorf("id %q not found in %s", id, storePath)
		}
	default:
		return errors.New("either -result or -store with -id is required")
	}

	out, err := imgcrop.Apply(src, entry.Result)
	if err != nil {
		return err
	}
	return imaging.Save(out, outPath)
}
