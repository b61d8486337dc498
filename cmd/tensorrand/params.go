package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/born-ml/tensorrand/internal/tensor"
)

// param is a tensor given on the command line as values plus an optional shape.
type param struct {
	name   string
	values string
	shape  string
}

func (p *param) addFlags(fs *pflag.FlagSet, usage string) {
	fs.StringVar(&p.values, p.name, p.values, usage+" (comma separated values)")
	fs.StringVar(&p.shape, p.name+"-shape", p.shape, "Shape of --"+p.name+", defaults to the number of values")
}

func (p *param) set() bool {
	return strings.TrimSpace(p.values) != ""
}

// tensor builds the parameter with the given dtype, or returns nil when unset.
func (p *param) tensor(dtype tensor.DataType) (*tensor.RawTensor, error) {
	if !p.set() {
		return nil, nil
	}
	values, err := parseValues(p.values)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", p.name, err)
	}

	shape := tensor.Shape{len(values)}
	if p.shape != "" {
		if shape, err = tensor.ParseShape(p.shape); err != nil {
			return nil, fmt.Errorf("--%s-shape: %w", p.name, err)
		}
	}
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("--%s: %d values for shape %v: %w", p.name, len(values), shape, tensor.ErrShapeMismatch)
	}

	r, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		r.SetFloat64At(i, v)
	}
	return r, nil
}

func parseValues(text string) ([]float64, error) {
	fields := strings.Split(text, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, tensor.ErrInvalidArgument)
		}
		values[i] = v
	}
	return values, nil
}

// output describes the tensor a command fills.
type output struct {
	shape string
	dtype string
	order string
	limit int
	file  string
}

func (o *output) addFlags(fs *pflag.FlagSet, shape, dtype string) {
	fs.StringVar(&o.shape, "shape", shape, "Shape of the output tensor, e.g. 4,3")
	fs.StringVar(&o.dtype, "dtype", dtype, "Element type of the output tensor")
	fs.StringVar(&o.order, "order", "c", "Element order of the output tensor: c (row-major) or f (column-major)")
	fs.IntVar(&o.limit, "limit", 10, "Number of elements to print")
	fs.StringVarP(&o.file, "output", "o", "", "Write the filled tensor to this SafeTensors file")
}

func (o *output) dataType() (tensor.DataType, error) {
	dt, ok := tensor.ParseDataType(o.dtype)
	if !ok {
		return 0, fmt.Errorf("--dtype %q: %w", o.dtype, tensor.ErrUnsupportedType)
	}
	return dt, nil
}

func (o *output) tensor() (*tensor.RawTensor, error) {
	dt, err := o.dataType()
	if err != nil {
		return nil, err
	}
	shape, err := tensor.ParseShape(o.shape)
	if err != nil {
		return nil, fmt.Errorf("--shape: %w", err)
	}
	if len(o.order) != 1 {
		return nil, fmt.Errorf("--order %q: %w", o.order, tensor.ErrInvalidArgument)
	}
	return tensor.NewRawOrdered(shape, dt, tensor.Order(o.order[0]))
}
