package forecast

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// LSTMConfig holds the training hyperparameters of the reference model.
type LSTMConfig struct {
	HiddenUnits  int
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
}

// DefaultLSTMConfig mirrors the reference architecture: two stacked
// 50-unit recurrent layers, 50 epochs of mini-batch 32 with Adam at 1e-3.
func DefaultLSTMConfig() LSTMConfig {
	return LSTMConfig{
		HiddenUnits:  50,
		Epochs:       50,
		BatchSize:    32,
		LearningRate: 0.001,
		Seed:         1,
	}
}

// LSTM is a two-layer stacked LSTM feeding a single linear output unit,
// trained with mean-squared-error loss. It implements Regressor.
type LSTM struct {
	cfg     LSTMConfig
	inSize  int
	l1, l2  *lstmLayer
	out     *denseLayer
	rng     *rand.Rand
	step    int
	trained bool
}

// NewLSTM creates an untrained model for the given input feature width.
func NewLSTM(cfg LSTMConfig, inputSize int) *LSTM {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &LSTM{
		cfg:    cfg,
		inSize: inputSize,
		l1:     newLSTMLayer(inputSize, cfg.HiddenUnits, rng),
		l2:     newLSTMLayer(cfg.HiddenUnits, cfg.HiddenUnits, rng),
		out:    newDenseLayer(cfg.HiddenUnits, rng),
		rng:    rng,
	}
}

// Fit trains the model on the given window/target pairs. A fixed number
// of passes is made over the data; there is no early stopping.
func (m *LSTM) Fit(windows []Window, targets []float64) error {
	if len(windows) == 0 {
		return errors.New("no training windows")
	}
	if len(windows) != len(targets) {
		return fmt.Errorf("window/target length mismatch: %d vs %d", len(windows), len(targets))
	}

	idx := make([]int, len(windows))
	for i := range idx {
		idx[i] = i
	}

	for epoch := 0; epoch < m.cfg.Epochs; epoch++ {
		m.rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		for start := 0; start < len(idx); start += m.cfg.BatchSize {
			end := start + m.cfg.BatchSize
			if end > len(idx) {
				end = len(idx)
			}
			m.trainBatch(windows, targets, idx[start:end])
		}
	}

	m.trained = true
	return nil
}

func (m *LSTM) trainBatch(windows []Window, targets []float64, batch []int) {
	m.l1.zeroGrads()
	m.l2.zeroGrads()
	m.out.zeroGrads()

	scale := 1.0 / float64(len(batch))
	for _, i := range batch {
		x := windowToVectors(windows[i])

		c1 := m.l1.forward(x)
		c2 := m.l2.forward(c1.h)
		last := c2.h[len(c2.h)-1]
		y := m.out.forward(last)

		// MSE gradient, averaged over the batch.
		dy := 2 * (y - targets[i]) * scale
		dhLast := m.out.backward(dy, last)

		dh2 := make([][]float64, len(x))
		for t := range dh2 {
			dh2[t] = make([]float64, m.cfg.HiddenUnits)
		}
		copy(dh2[len(dh2)-1], dhLast)

		dx2 := m.l2.backward(c2, dh2)
		m.l1.backward(c1, dx2)
	}

	m.step++
	lr := m.cfg.LearningRate
	m.l1.applyAdam(lr, m.step)
	m.l2.applyAdam(lr, m.step)
	m.out.applyAdam(lr, m.step)
}

// Predict runs the trained model on a single window.
func (m *LSTM) Predict(w Window) (float64, error) {
	if !m.trained {
		return 0, errors.New("model is not trained")
	}
	if len(w) == 0 {
		return 0, errors.New("empty window")
	}
	x := windowToVectors(w)
	c1 := m.l1.forward(x)
	c2 := m.l2.forward(c1.h)
	return m.out.forward(c2.h[len(c2.h)-1]), nil
}

func windowToVectors(w Window) [][]float64 {
	x := make([][]float64, len(w))
	for t, s := range w {
		x[t] = []float64{s.Close, s.Sentiment}
	}
	return x
}

// gate order within the per-gate parameter arrays.
const (
	gateF = iota
	gateI
	gateG
	gateO
	numGates
)

type lstmLayer struct {
	inSize, hidden int

	w [numGates][][]float64 // input weights [hidden][inSize]
	u [numGates][][]float64 // recurrent weights [hidden][hidden]
	b [numGates][]float64

	gw [numGates][][]float64
	gu [numGates][][]float64
	gb [numGates][]float64

	mw, vw [numGates][][]float64
	mu, vu [numGates][][]float64
	mb, vb [numGates][]float64
}

func newLSTMLayer(inSize, hidden int, rng *rand.Rand) *lstmLayer {
	l := &lstmLayer{inSize: inSize, hidden: hidden}
	for g := 0; g < numGates; g++ {
		l.w[g] = glorotMat(hidden, inSize, rng)
		l.u[g] = glorotMat(hidden, hidden, rng)
		l.b[g] = make([]float64, hidden)
		l.gw[g] = newMat(hidden, inSize)
		l.gu[g] = newMat(hidden, hidden)
		l.gb[g] = make([]float64, hidden)
		l.mw[g] = newMat(hidden, inSize)
		l.vw[g] = newMat(hidden, inSize)
		l.mu[g] = newMat(hidden, hidden)
		l.vu[g] = newMat(hidden, hidden)
		l.mb[g] = make([]float64, hidden)
		l.vb[g] = make([]float64, hidden)
	}
	// forget-gate bias starts at 1 so early training does not dump state
	for j := range l.b[gateF] {
		l.b[gateF][j] = 1
	}
	return l
}

type lstmCache struct {
	x             [][]float64
	f, i, g, o    [][]float64
	c, h, tanhC   [][]float64
}

func (l *lstmLayer) forward(x [][]float64) *lstmCache {
	T := len(x)
	cache := &lstmCache{
		x: x,
		f: newMat(T, l.hidden), i: newMat(T, l.hidden),
		g: newMat(T, l.hidden), o: newMat(T, l.hidden),
		c: newMat(T, l.hidden), h: newMat(T, l.hidden),
		tanhC: newMat(T, l.hidden),
	}

	hPrev := make([]float64, l.hidden)
	cPrev := make([]float64, l.hidden)

	for t := 0; t < T; t++ {
		for j := 0; j < l.hidden; j++ {
			zf := l.b[gateF][j]
			zi := l.b[gateI][j]
			zg := l.b[gateG][j]
			zo := l.b[gateO][j]
			for k, xk := range x[t] {
				zf += l.w[gateF][j][k] * xk
				zi += l.w[gateI][j][k] * xk
				zg += l.w[gateG][j][k] * xk
				zo += l.w[gateO][j][k] * xk
			}
			for k, hk := range hPrev {
				zf += l.u[gateF][j][k] * hk
				zi += l.u[gateI][j][k] * hk
				zg += l.u[gateG][j][k] * hk
				zo += l.u[gateO][j][k] * hk
			}

			f := sigmoid(zf)
			i := sigmoid(zi)
			g := math.Tanh(zg)
			o := sigmoid(zo)
			c := f*cPrev[j] + i*g
			tc := math.Tanh(c)

			cache.f[t][j] = f
			cache.i[t][j] = i
			cache.g[t][j] = g
			cache.o[t][j] = o
			cache.c[t][j] = c
			cache.tanhC[t][j] = tc
			cache.h[t][j] = o * tc
		}
		hPrev = cache.h[t]
		cPrev = cache.c[t]
	}
	return cache
}

// backward runs backpropagation through time over the full window.
// dh carries the external gradient arriving at each step's hidden state;
// the returned slice is the gradient with respect to the layer inputs.
func (l *lstmLayer) backward(cache *lstmCache, dh [][]float64) [][]float64 {
	T := len(cache.x)
	dx := make([][]float64, T)
	for t := range dx {
		dx[t] = make([]float64, l.inSize)
	}

	dhNext := make([]float64, l.hidden)
	dcNext := make([]float64, l.hidden)

	for t := T - 1; t >= 0; t-- {
		var hPrev, cPrev []float64
		if t > 0 {
			hPrev = cache.h[t-1]
			cPrev = cache.c[t-1]
		} else {
			hPrev = make([]float64, l.hidden)
			cPrev = make([]float64, l.hidden)
		}

		dhPrev := make([]float64, l.hidden)
		dcPrev := make([]float64, l.hidden)

		for j := 0; j < l.hidden; j++ {
			dhj := dh[t][j] + dhNext[j]

			f := cache.f[t][j]
			i := cache.i[t][j]
			g := cache.g[t][j]
			o := cache.o[t][j]
			tc := cache.tanhC[t][j]

			dc := dcNext[j] + dhj*o*(1-tc*tc)

			dzo := dhj * tc * o * (1 - o)
			dzf := dc * cPrev[j] * f * (1 - f)
			dzi := dc * g * i * (1 - i)
			dzg := dc * i * (1 - g*g)

			dcPrev[j] = dc * f

			dz := [numGates]float64{gateF: dzf, gateI: dzi, gateG: dzg, gateO: dzo}
			for gate := 0; gate < numGates; gate++ {
				dzv := dz[gate]
				l.gb[gate][j] += dzv
				for k, xk := range cache.x[t] {
					l.gw[gate][j][k] += dzv * xk
					dx[t][k] += l.w[gate][j][k] * dzv
				}
				for k, hk := range hPrev {
					l.gu[gate][j][k] += dzv * hk
					dhPrev[k] += l.u[gate][j][k] * dzv
				}
			}
		}

		dhNext = dhPrev
		dcNext = dcPrev
	}
	return dx
}

func (l *lstmLayer) zeroGrads() {
	for g := 0; g < numGates; g++ {
		zeroMat(l.gw[g])
		zeroMat(l.gu[g])
		zeroVec(l.gb[g])
	}
}

func (l *lstmLayer) applyAdam(lr float64, step int) {
	for g := 0; g < numGates; g++ {
		adamMat(l.w[g], l.gw[g], l.mw[g], l.vw[g], lr, step)
		adamMat(l.u[g], l.gu[g], l.mu[g], l.vu[g], lr, step)
		adamVec(l.b[g], l.gb[g], l.mb[g], l.vb[g], lr, step)
	}
}

type denseLayer struct {
	w  []float64
	b  float64
	gw []float64
	gb float64
	mw, vw []float64
	mb, vb float64
}

func newDenseLayer(inSize int, rng *rand.Rand) *denseLayer {
	d := &denseLayer{
		w:  make([]float64, inSize),
		gw: make([]float64, inSize),
		mw: make([]float64, inSize),
		vw: make([]float64, inSize),
	}
	limit := math.Sqrt(6.0 / float64(inSize+1))
	for i := range d.w {
		d.w[i] = (rng.Float64()*2 - 1) * limit
	}
	return d
}

func (d *denseLayer) forward(h []float64) float64 {
	y := d.b
	for i, hi := range h {
		y += d.w[i] * hi
	}
	return y
}

func (d *denseLayer) backward(dy float64, h []float64) []float64 {
	dh := make([]float64, len(h))
	for i, hi := range h {
		d.gw[i] += dy * hi
		dh[i] = d.w[i] * dy
	}
	d.gb += dy
	return dh
}

func (d *denseLayer) zeroGrads() {
	zeroVec(d.gw)
	d.gb = 0
}

func (d *denseLayer) applyAdam(lr float64, step int) {
	adamVec(d.w, d.gw, d.mw, d.vw, lr, step)
	d.b, d.mb, d.vb = adamScalar(d.b, d.gb, d.mb, d.vb, lr, step)
}

const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-7
)

func adamScalar(p, g, m, v, lr float64, step int) (float64, float64, float64) {
	m = adamBeta1*m + (1-adamBeta1)*g
	v = adamBeta2*v + (1-adamBeta2)*g*g
	mHat := m / (1 - math.Pow(adamBeta1, float64(step)))
	vHat := v / (1 - math.Pow(adamBeta2, float64(step)))
	return p - lr*mHat/(math.Sqrt(vHat)+adamEps), m, v
}

func adamVec(p, g, m, v []float64, lr float64, step int) {
	for i := range p {
		p[i], m[i], v[i] = adamScalar(p[i], g[i], m[i], v[i], lr, step)
	}
}

func adamMat(p, g, m, v [][]float64, lr float64, step int) {
	for i := range p {
		adamVec(p[i], g[i], m[i], v[i], lr, step)
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func glorotMat(rows, cols int, rng *rand.Rand) [][]float64 {
	limit := math.Sqrt(6.0 / float64(rows+cols))
	m := newMat(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = (rng.Float64()*2 - 1) * limit
		}
	}
	return m
}

func newMat(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func zeroMat(m [][]float64) {
	for i := range m {
		zeroVec(m[i])
	}
}

func zeroVec(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
