package mindrisk

import (
	"encoding/json"
	"sort"
)

// ClassMetrics are the per-class figures of a classification report.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1-score"`
	Support   int     `json:"support"`
}

// ClassificationReport summarizes predictions against true labels. It
// serializes as a flat object keyed by class name plus "accuracy",
// "macro avg" and "weighted avg".
type ClassificationReport struct {
	Classes     map[string]ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
}

// MarshalJSON implements json.Marshaler.
func (r ClassificationReport) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Classes)+3)
	for label, m := range r.Classes {
		out[label] = m
	}
	out["accuracy"] = r.Accuracy
	out["macro avg"] = r.MacroAvg
	out["weighted avg"] = r.WeightedAvg
	return json.Marshal(out)
}

// Labels returns the report's class names in sorted order.
func (r ClassificationReport) Labels() []string {
	labels := make([]string, 0, len(r.Classes))
	for label := range r.Classes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// accuracyScore is the fraction of predictions equal to the truth.
func accuracyScore(truth, pred []string) float64 {
	if len(truth) == 0 {
		return 0
	}
	correct := 0
	for i := range truth {
		if truth[i] == pred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}

// classificationReport computes per-class precision, recall and F1 over the
// union of true and predicted labels. Undefined ratios count as zero.
func classificationReport(truth, pred []string) ClassificationReport {
	tp := make(map[string]int)
	predicted := make(map[string]int)
	support := make(map[string]int)
	for i := range truth {
		support[truth[i]]++
		predicted[pred[i]]++
		if truth[i] == pred[i] {
			tp[truth[i]]++
		}
	}

	report := ClassificationReport{
		Classes:  make(map[string]ClassMetrics),
		Accuracy: accuracyScore(truth, pred),
	}
	labels := make(map[string]bool)
	for l := range support {
		labels[l] = true
	}
	for l := range predicted {
		labels[l] = true
	}

	total := len(truth)
	var macro, weighted ClassMetrics
	for label := range labels {
		m := ClassMetrics{Support: support[label]}
		m.Precision = ratio(tp[label], predicted[label])
		m.Recall = ratio(tp[label], support[label])
		if m.Precision+m.Recall > 0 {
			m.F1Score = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Classes[label] = m

		macro.Precision += m.Precision
		macro.Recall += m.Recall
		macro.F1Score += m.F1Score
		w := float64(m.Support)
		weighted.Precision += w * m.Precision
		weighted.Recall += w * m.Recall
		weighted.F1Score += w * m.F1Score
	}

	if n := float64(len(labels)); n > 0 {
		macro.Precision /= n
		macro.Recall /= n
		macro.F1Score /= n
	}
	if total > 0 {
		weighted.Precision /= float64(total)
		weighted.Recall /= float64(total)
		weighted.F1Score /= float64(total)
	}
	macro.Support, weighted.Support = total, total
	report.MacroAvg = macro
	report.WeightedAvg = weighted
	return report
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
