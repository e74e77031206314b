// Package repository stores trained hypotheses as zstd compressed files, one per name.
package repository

import "os"
import "path/filepath"
import "strings"

import "github.com/klauspost/compress/zstd"
import "github.com/pkg/errors"
import "go.uber.org/multierr"
import "go.uber.org/zap"

import "github.com/neurlang/digitclassifier/engine"
import "github.com/neurlang/digitclassifier/errs"

// Ext is appended to the model name to form the file name
const Ext = ".model.zst"

// Repository maps model names to files in one directory
type Repository struct {
	dir    string
	codec  engine.Codec
	logger *zap.SugaredLogger
}

// New returns a repository in dir which (de)serializes using codec
func New(dir string, codec engine.Codec, logger *zap.SugaredLogger) *Repository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Repository{dir: dir, codec: codec, logger: logger}
}

// Dir returns the directory of the repository
func (r *Repository) Dir() string {
	return r.dir
}

// Path returns the file holding the model name
func (r *Repository) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.dir, name+Ext), nil
}

func checkName(name string) error {
	if name == "" {
		return errs.Configurationf("model name is empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return errs.Configurationf("model name %q must not contain path separators or ..", name)
	}
	return nil
}

// Exists reports whether a model is stored under name
func (r *Repository) Exists(name string) bool {
	path, err := r.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the model stored under name
func (r *Repository) Load(name string) (h engine.Hypothesis, err error) {
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Resource(err, path)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errs.Engine(err, "deserialize", name)
	}
	defer dec.Close()

	h, err = r.codec.Decode(dec)
	if err != nil {
		return nil, errs.Engine(err, "deserialize", name)
	}
	r.logger.Debugw("model loaded", "name", name, "path", path)
	return h, nil
}

// Save writes h under name, replacing any previous model of that name.
// The file is written next to its destination and renamed into place.
func (r *Repository) Save(h engine.Hypothesis, name string) error {
	path, err := r.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errs.Resource(err, r.dir)
	}
	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return errs.Resource(err, r.dir)
	}
	if err := r.write(tmp, h, name); err != nil {
		multierr.AppendInto(&err, os.Remove(tmp.Name()))
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.Resource(multierr.Append(err, os.Remove(tmp.Name())), path)
	}
	r.logger.Infow("model saved", "name", name, "path", path)
	return nil
}

func (r *Repository) write(f *os.File, h engine.Hypothesis, name string) (err error) {
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, errs.Resource(cerr, f.Name()))
		}
	}()
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return errs.Engine(err, "serialize", name)
	}
	if err := r.codec.Encode(enc, h); err != nil {
		enc.Close()
		return errs.Engine(err, "serialize", name)
	}
	if err := enc.Close(); err != nil {
		return errs.Resource(errors.Wrap(err, "zstd"), f.Name())
	}
	return f.Sync()
}
