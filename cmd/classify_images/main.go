package main

import "fmt"
import "os"
import "path/filepath"
import "sort"
import "strings"

import "github.com/disintegration/imaging"
import "github.com/pkg/errors"
import "github.com/urfave/cli/v2"
import _ "golang.org/x/image/bmp"
import _ "golang.org/x/image/tiff"

import "github.com/neurlang/digitclassifier/config"
import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/internal/app"

func main() {
	app.Main(&cli.App{
		Name:      "classify_images",
		Usage:     "classify digit images",
		ArgsUsage: "image or directory...",
		Flags: append(app.Flags(),
			&cli.BoolFlag{Name: "resize", Usage: "scale images to 28x28 first"},
		),
		Action: classifyImages,
	})
}

func classifyImages(c *cli.Context) error {
	if c.NArg() == 0 {
		return errs.Configurationf("no images given")
	}
	cfg, err := app.Config(c, config.Overrides{})
	if err != nil {
		return err
	}
	log := app.Logger(c.App.Name, cfg)
	defer func() { _ = log.Sync() }()

	session, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	svc, err := session.Service()
	if err != nil {
		return err
	}
	paths, err := expand(c.Args().Slice())
	if err != nil {
		return err
	}
	for _, path := range paths {
		img, err := imaging.Open(path)
		if err != nil {
			return errs.Resource(err, path)
		}
		if c.Bool("resize") {
			img = imaging.Resize(img, mnist.ImgSize, mnist.ImgSize, imaging.Lanczos)
		}
		class, err := svc.ClassifyImage(img)
		if err != nil {
			return errors.WithMessage(err, path)
		}
		fmt.Fprintf(c.App.Writer, "%s: %d\n", path, class)
	}
	return nil
}

var extensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

// expand replaces each directory by the image files directly inside it
func expand(args []string) (o []string, err error) {
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errs.Resource(err, arg)
		}
		if !info.IsDir() {
			o = append(o, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errs.Resource(err, arg)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && extensions[strings.ToLower(filepath.Ext(e.Name()))] {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		o = append(o, found...)
	}
	return o, nil
}
