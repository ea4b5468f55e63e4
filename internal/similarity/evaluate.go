package similarity

// Evaluation is a confusion matrix over labeled samples.
type Evaluation struct {
	Total         int     `json:"total"`
	Correct       int     `json:"correct"`
	Accuracy      float64 `json:"accuracy"`
	TruePositive  int     `json:"true_positive"`
	FalsePositive int     `json:"false_positive"`
	TrueNegative  int     `json:"true_negative"`
	FalseNegative int     `json:"false_negative"`
}

// Scorer is anything that judges a title pair, such as a Detector.
type Scorer interface {
	Estimate(title1, title2 string) Result
}

// Evaluate scores every sample and counts AreSimilar against the label.
func Evaluate(s Scorer, samples []TrainingSample) Evaluation {
	var ev Evaluation
	for _, sample := range samples {
		predicted := s.Estimate(sample.ItemATitle, sample.ItemBTitle).AreSimilar
		actual := sample.IsSimilar == 1
		switch {
		case predicted && actual:
			ev.TruePositive++
		case predicted && !actual:
			ev.FalsePositive++
		case !predicted && !actual:
			ev.TrueNegative++
		default:
			ev.FalseNegative++
		}
	}
	ev.Total = len(samples)
	ev.Correct = ev.TruePositive + ev.TrueNegative
	if ev.Total > 0 {
		ev.Accuracy = float64(ev.Correct) / float64(ev.Total)
	}
	return ev
}

// EvaluateModel scores samples with m alone, without a fallback.
func EvaluateModel(m *Model, samples []TrainingSample) (Evaluation, error) {
	te, err := NewTrainedEstimator(m)
	if err != nil {
		return Evaluation{}, err
	}
	var scoringErr error
	ev := Evaluate(scorerFunc(func(a, b string) Result {
		res, err := te.Estimate(a, b)
		if err != nil && scoringErr == nil {
			scoringErr = err
		}
		return res
	}), samples)
	return ev, scoringErr
}

type scorerFunc func(title1, title2 string) Result

func (f scorerFunc) Estimate(title1, title2 string) Result { return f(title1, title2) }
