package feedforward

import "sort"

import "github.com/neurlang/digitclassifier/datasets"
import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/layer"
import "github.com/neurlang/digitclassifier/layer/conv2d"
import "github.com/neurlang/digitclassifier/layer/full"
import "github.com/neurlang/digitclassifier/layer/maxpool2d"

// FNN is the fully connected 784-500-500-2000-10 network
func FNN() FeedforwardNetwork {
	net := New("fnn")
	net.NewLayer(full.MustNew(mnist.Pixels, 500, layer.Sigmoid, true))
	net.NewLayer(full.MustNew(500, 500, layer.Sigmoid, true))
	net.NewLayer(full.MustNew(500, 2000, layer.Sigmoid, true))
	net.NewLayer(full.MustNew(2000, datasets.Classes, layer.Softmax, true))
	return *net
}

// CNN is the two stage convolutional network
func CNN() FeedforwardNetwork {
	net := New("cnn")
	// 6 filters of 9x9 over the image make 6 maps of 20x20
	net.NewLayer(conv2d.MustNew(mnist.Pixels, 6*20*20, layer.Sigmoid, true, 6, 1))
	net.NewLayer(maxpool2d.MustNew(6*20*20, 6*10*10, 6))
	// 16 filters of 6x6 over the 6 maps make 16 maps of 5x5
	net.NewLayer(conv2d.MustNew(6*10*10, 16*5*5, layer.Sigmoid, true, 16, 6))
	net.NewLayer(full.MustNew(16*5*5, 100, layer.Sigmoid, true))
	net.NewLayer(full.MustNew(100, datasets.Classes, layer.Softmax, true))
	return *net
}

var presets = map[string]func() FeedforwardNetwork{
	"fnn": FNN,
	"cnn": CNN,
}

// Preset returns the network called name
func Preset(name string) (FeedforwardNetwork, error) {
	p, ok := presets[name]
	if !ok {
		return FeedforwardNetwork{}, errs.Configurationf("unknown topology %q, have %v", name, PresetNames())
	}
	return p(), nil
}

// PresetNames lists the preset names in order
func PresetNames() (o []string) {
	for k := range presets {
		o = append(o, k)
	}
	sort.Strings(o)
	return
}
