package sites

// Signals summarizes which extraction signals succeeded for a page. Each
// site maps a Signals value to a confidence through its own hand-tuned
// scoring function, so the threshold logic stays testable independently of
// HTML parsing.
//
// Confidences are calibrated per site and are not comparable across sites:
// several sources carry hard caps reflecting known unreliability of their
// markup, and that asymmetry is deliberate.
type Signals struct {
	HasJSONLD bool
	HasTitle  bool
	HasAuthor bool
	BodyLen   int
}

// Body length thresholds shared by the scoring tables.
const (
	longBodyChars  = 500
	shortBodyChars = 300
)

// Site confidence floors, assigned when critical content is missing.
const (
	apFloor       = 0.50
	bbcFloor      = 0.60
	cbsFloor      = 0.60
	cnnFloor      = 0.60
	foxFloor      = 0.50
	guardianFloor = 0.65
	nbcFloor      = 0.60
	nytFloor      = 0.50
	genericFloor  = 0.55
)

// Site confidence caps.
const (
	bbcCap     = 0.90
	foxCap     = 0.75
	nytCap     = 0.70
	genericCap = 0.80
)

// APScore rewards the JSON-LD plus DOM-body combination; body length is the
// tie-break.
func APScore(s Signals) float64 {
	switch {
	case s.HasJSONLD && s.BodyLen > longBodyChars:
		return 0.95
	case s.HasJSONLD && s.BodyLen > 0:
		return 0.90
	case s.BodyLen > longBodyChars:
		return 0.80
	case s.BodyLen > 0:
		return 0.75
	default:
		return apFloor
	}
}

// BBCScore is DOM-driven and hard-capped at 0.90.
func BBCScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle:
		return bbcCap
	case s.BodyLen > shortBodyChars && s.HasTitle:
		return 0.85
	case s.BodyLen > 0 && s.HasTitle:
		return 0.75
	default:
		return bbcFloor
	}
}

// CBSScore covers the DOM-body path; a full JSON-LD articleBody is scored
// separately as exactly 1.0 by the extractor.
func CBSScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle && s.HasAuthor:
		return 0.85
	case s.BodyLen > longBodyChars && s.HasTitle:
		return 0.83
	case s.BodyLen > 0 && s.HasTitle:
		return 0.75
	default:
		return cbsFloor
	}
}

// CNNScore tops out at 0.85 when every signal lands.
func CNNScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle && s.HasAuthor:
		return 0.85
	case s.BodyLen > longBodyChars && s.HasTitle:
		return 0.83
	case s.BodyLen > 0 && s.HasTitle:
		return 0.75
	default:
		return cnnFloor
	}
}

// FoxScore is hard-capped at 0.75; the site's markup is too noisy to trust
// more.
func FoxScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle:
		return foxCap
	case s.BodyLen > shortBodyChars && s.HasTitle:
		return 0.70
	case s.BodyLen > 0 && s.HasTitle:
		return 0.65
	default:
		return foxFloor
	}
}

// GuardianScore tops out at 0.90 when author is present.
func GuardianScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle && s.HasAuthor:
		return 0.90
	case s.BodyLen > longBodyChars && s.HasTitle:
		return 0.88
	case s.BodyLen > 0 && s.HasTitle:
		return 0.80
	default:
		return guardianFloor
	}
}

// NBCScore tops out at 0.80.
func NBCScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle && s.HasAuthor:
		return 0.80
	case s.BodyLen > longBodyChars && s.HasTitle:
		return 0.78
	case s.BodyLen > 0 && s.HasTitle:
		return 0.70
	default:
		return nbcFloor
	}
}

// NYTScore is hard-capped at 0.70; the site's layouts are too varied for
// selector-based extraction to be trusted more.
func NYTScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle && s.HasAuthor:
		return nytCap
	case s.BodyLen > longBodyChars && s.HasTitle:
		return 0.68
	case s.BodyLen > 0 && s.HasTitle:
		return 0.60
	default:
		return nytFloor
	}
}

// GenericScore serves sources without a dedicated extractor, capped at 0.80.
func GenericScore(s Signals) float64 {
	switch {
	case s.BodyLen > longBodyChars && s.HasTitle && s.HasAuthor:
		return genericCap
	case s.BodyLen > longBodyChars && s.HasTitle:
		return 0.78
	case s.BodyLen > 0 && s.HasTitle:
		return 0.70
	default:
		return genericFloor
	}
}
