package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/born-ml/tensorrand/internal/serialization"
	"github.com/born-ml/tensorrand/internal/tensor"
)

// samplesKey names the filled tensor inside an exported file.
const samplesKey = "samples"

// finish exports the filled tensor when --output is set, then renders it.
func (a *app) finish(t *tensor.RawTensor, out *output, distribution string) error {
	if out.file != "" {
		if err := a.export(out.file, t, distribution); err != nil {
			return err
		}
	}
	return a.render(t, out.limit)
}

func (a *app) export(path string, t *tensor.RawTensor, distribution string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	metadata := map[string]string{
		"distribution": distribution,
		"seed":         strconv.FormatUint(a.cfg.Seed, 10),
		"offset":       strconv.FormatUint(a.gen.Offset(), 10),
	}
	if err := serialization.WriteSafeTensors(f, map[string]*tensor.RawTensor{samplesKey: t}, metadata); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	a.log.Info("exported", zap.String("path", path), zap.String("distribution", distribution))
	return nil
}
