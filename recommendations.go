package mindrisk

// Priority recommendation categories.
const (
	PriorityImmediateHelp        = "immediate_professional_help"
	PriorityCrisisResources      = "crisis_resources"
	PriorityScheduleConsultation = "schedule_professional_consultation"
	PrioritySelfCare             = "self_care_strategies"
	PriorityDepressionCoping     = "depression_coping_strategies"
	PriorityAnxietyCoping        = "anxiety_coping_strategies"
	PriorityMaintainWellness     = "maintain_wellness"
)

// PriorityRecommendations derives the ordered category list from a risk level
// and the detected conditions.
func PriorityRecommendations(risk RiskLevel, detected []Condition) []string {
	var priorities []string

	switch risk {
	case RiskHigh:
		priorities = append(priorities, PriorityImmediateHelp, PriorityCrisisResources)
	case RiskModerate:
		priorities = append(priorities, PriorityScheduleConsultation, PrioritySelfCare)
	}

	if containsCondition(detected, Depression) {
		priorities = append(priorities, PriorityDepressionCoping)
	}
	if containsCondition(detected, Anxiety) {
		priorities = append(priorities, PriorityAnxietyCoping)
	}

	if len(priorities) == 0 {
		priorities = append(priorities, PriorityMaintainWellness)
	}
	return priorities
}

func containsCondition(list []Condition, c Condition) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

// A Resource is a named contact point.
type Resource struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// A Recommendation is one actionable suggestion.
type Recommendation struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Urgency     string     `json:"urgency,omitempty"`
	Steps       []string   `json:"steps,omitempty"`
	Tips        []string   `json:"tips,omitempty"`
	Resources   []Resource `json:"resources,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// RecommendationSet is the categorized catalogue returned by Recommendations.
type RecommendationSet struct {
	ImmediateActions      []Recommendation `json:"immediate_actions"`
	SelfCare              []Recommendation `json:"self_care"`
	ProfessionalResources []Recommendation `json:"professional_resources"`
	CopingStrategies      []Recommendation `json:"coping_strategies"`
	LifestyleChanges      []Recommendation `json:"lifestyle_changes"`
}

// Recommendations returns detailed suggestions for a risk level and set of
// conditions. Self-care and professional resources are always included.
func Recommendations(risk RiskLevel, conditions []Condition) RecommendationSet {
	set := RecommendationSet{
		ImmediateActions: []Recommendation{},
		CopingStrategies: []Recommendation{},
		LifestyleChanges: []Recommendation{},
	}

	if risk == RiskHigh {
		set.ImmediateActions = []Recommendation{
			{
				Title:       "Seek Professional Help",
				Description: "Please consider reaching out to a mental health professional as soon as possible.",
				Urgency:     "high",
			},
			{
				Title:       "Crisis Support",
				Description: "If you are in crisis, please contact a helpline immediately.",
				Resources: []Resource{
					{Name: "National Suicide Prevention Lifeline", Contact: "988"},
					{Name: "Crisis Text Line", Contact: "Text HOME to 741741"},
				},
				Urgency: "critical",
			},
		}
	}

	if containsCondition(conditions, Depression) {
		set.CopingStrategies = append(set.CopingStrategies,
			Recommendation{
				Title:       "Behavioral Activation",
				Description: "Schedule small, enjoyable activities throughout your day, even if you do not feel like it.",
				Steps: []string{
					"Make a list of activities you used to enjoy",
					"Start with just one 15-minute activity",
					"Gradually increase activities over time",
				},
			},
			Recommendation{
				Title:       "Social Connection",
				Description: "Reach out to a friend, family member, or support group.",
				Steps: []string{
					"Send a simple message to someone you trust",
					"Consider joining an online support community",
					"Aim for at least one social interaction daily",
				},
			},
		)
	}

	if containsCondition(conditions, Anxiety) {
		set.CopingStrategies = append(set.CopingStrategies,
			Recommendation{
				Title:       "Grounding Techniques",
				Description: "Practice the 5-4-3-2-1 technique when feeling anxious.",
				Steps: []string{
					"Name 5 things you can see",
					"Name 4 things you can touch",
					"Name 3 things you can hear",
					"Name 2 things you can smell",
					"Name 1 thing you can taste",
				},
			},
			Recommendation{
				Title:       "Deep Breathing",
				Description: "Practice diaphragmatic breathing to activate your relaxation response.",
				Steps: []string{
					"Breathe in slowly for 4 seconds",
					"Hold for 4 seconds",
					"Exhale slowly for 6 seconds",
					"Repeat 5-10 times",
				},
			},
		)
	}

	set.SelfCare = []Recommendation{
		{
			Title:       "Sleep Hygiene",
			Description: "Maintain a consistent sleep schedule and create a restful environment.",
			Tips:        []string{"Go to bed at the same time daily", "Limit screen time before bed", "Keep your bedroom cool and dark"},
		},
		{
			Title:       "Physical Activity",
			Description: "Regular exercise can significantly improve mood and reduce anxiety.",
			Tips:        []string{"Start with 10-15 minutes of walking", "Try yoga or stretching", "Find activities you enjoy"},
		},
		{
			Title:       "Mindfulness Practice",
			Description: "Regular mindfulness can help manage stress and improve emotional regulation.",
			Tips:        []string{"Start with 5 minutes of meditation", "Try guided meditation apps", "Practice mindful breathing"},
		},
	}

	set.ProfessionalResources = []Recommendation{
		{
			Title:       "Find a Therapist",
			Description: "Consider working with a licensed mental health professional.",
			Resources: []Resource{
				{Name: "Psychology Today Therapist Directory"},
				{Name: "SAMHSA National Helpline", Contact: "1-800-662-4357"},
				{Name: "Open Path Collective (affordable therapy)"},
			},
		},
		{
			Title:       "Online Therapy Options",
			Description: "Teletherapy can be a convenient option for mental health support.",
			Note:        "Many services offer sliding scale fees based on income.",
		},
	}

	return set
}
