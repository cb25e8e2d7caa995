package staffscout

// FieldKeywords maps a field-of-study label to the keywords that indicate it.
type FieldKeywords struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary holds the keyword tables that drive classification and
// extraction. It is configuration data: construct it once, then treat it as
// read-only and share it between goroutines.
type Vocabulary struct {
	// StaffKeywords mark staff directory pages when found in a URL or title.
	StaffKeywords []string `yaml:"staff_keywords"`

	// StaffBypassKeywords are URL fragments strong enough to accept a staff
	// page even when the relevance filter rejects it.
	StaffBypassKeywords []string `yaml:"staff_bypass_keywords"`

	// DepartmentKeywords mark institute, department and lab hub pages.
	DepartmentKeywords []string `yaml:"department_keywords"`

	// ExcludeURLPatterns are substrings that disqualify a URL from crawling.
	ExcludeURLPatterns []string `yaml:"exclude_url_patterns"`

	// ExcludeExtensions are static-asset suffixes that are never fetched.
	ExcludeExtensions []string `yaml:"exclude_extensions"`

	// ExcludeEmailPatterns mark generic or administrative addresses.
	ExcludeEmailPatterns []string `yaml:"exclude_email_patterns"`

	// CardSelectors are CSS selectors commonly used for person cards.
	CardSelectors []string `yaml:"card_selectors"`

	// PersonSignals are words in class, id, role or aria-label attributes
	// that suggest a person container.
	PersonSignals []string `yaml:"person_signals"`

	// TitleHintSelectors are CSS selectors for job titles and positions.
	TitleHintSelectors []string `yaml:"title_hint_selectors"`

	// AcademicTitles are leading name titles, matched longest first.
	AcademicTitles []string `yaml:"academic_titles"`

	// RoleWords raise the score of a text block in page-level fallback mining.
	RoleWords []string `yaml:"role_words"`

	// GenericLabels are link or heading texts that are never person names.
	GenericLabels []string `yaml:"generic_labels"`

	// Fields map field-of-study labels to keywords, in priority order.
	Fields []FieldKeywords `yaml:"fields"`

	// RelevanceKeywords describe the target research domain in English.
	RelevanceKeywords []string `yaml:"relevance_keywords"`

	// RelevanceByLanguage holds translated relevance keywords.
	RelevanceByLanguage map[string][]string `yaml:"relevance_by_language"`

	// CountryLanguage maps a site country to a key of RelevanceByLanguage.
	CountryLanguage map[string]string `yaml:"country_language"`

	// UserAgents is the request identity pool used by fetchers.
	UserAgents []string `yaml:"user_agents"`
}

// DefaultVocabulary returns the built-in multilingual vocabulary.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		StaffKeywords: []string{
			// English
			"/staff/", "/people/", "/faculty/", "/researchers/", "/professors/",
			"/academics/", "/our-staff/", "/our-people/", "/our-team/",
			"/research-staff/", "/academic-staff/", "/members/",
			// German
			"/mitarbeiter/", "/mitarbeitende/", "/personen/",
			"/wissenschaftler/", "/professoren/", "/forschende/",
			"lehrstuhl", "arbeitsgruppe",
			// French
			"/personnel/", "/équipe/", "/equipe/", "/chercheurs/", "/professeurs/",
			// Italian
			"/personale/", "/ricercatori/", "/professori/",
			// Spanish
			"/investigadores/", "/profesores/",
			// Title keywords
			"academic staff", "research staff", "faculty members", "our researchers",
			"our professors", "team members", "group members",
			"staff", "people", "team", "researchers", "faculty",
			"mitarbeiter", "mitarbeitende", "personen", "wissenschaftler",
			"professoren", "forschende",
		},
		StaffBypassKeywords: []string{
			"/staff", "/people", "/team", "/faculty", "/members",
			"/mitarbeiter", "/mitarbeitende", "/personen", "/professoren",
			"/personnel", "/personale", "/profesores",
		},
		DepartmentKeywords: []string{
			"institute", "institut", "department", "dept", "fakultaet", "fakultät",
			"faculty of", "faculty-of", "school of", "school-of", "laboratory",
			"/lab", "labor", "research group", "research-group", "chair of",
			"centre", "center", "zentrum", "dipartimento", "département",
			"departement", "departamento", "facoltà", "facolta", "facultad",
			"faculté", "faculte", "electrical", "engineering", "elektrotechnik",
		},
		ExcludeURLPatterns: []string{
			"/press", "/news", "/events", "/calendar", "/media", "/gallery",
			"/publications", "/papers", "/downloads", "/archive", "/blog",
			"/alumni", "/students", "/courses", "/teaching", "/jobs", "/careers",
			"/contact", "/contacts", "/contact-us", "/get-in-touch",
			"/about/contact", "/general-enquiries", "/enquiries",
			"/admissions", "/apply", "/library", "/accommodation",
			"/login", "/logout", "/search", "/print/",
		},
		ExcludeExtensions: []string{
			".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
			".zip", ".gz", ".tar", ".doc", ".docx", ".ppt", ".pptx",
			".xls", ".xlsx", ".mp3", ".mp4", ".avi", ".mov", ".css", ".js",
			".xml", ".ics", ".vcf", ".rss",
		},
		ExcludeEmailPatterns: []string{
			"info@", "office@", "admin@", "enquiries@", "enquiry@",
			"press@", "press-office@", "media@", "communications@", "comms@",
			"student@", "students@", "alumni@", "admissions@", "applications@",
			"recruitment@", "hr@", "finance@", "marketing@",
			"library@", "accommodation@", "support@", "help@",
			"general@", "contact@", "reception@", "secretary@", "sec@",
			"events@", "event@", "booking@", "graduation@", "webmaster@",
			"noreply@", "no-reply@", "sekretariat@", "dekanat@",
			"internal-", "external-", "public-", "staff-social@",
		},
		CardSelectors: []string{
			".person", ".staff-member", ".team-member", ".faculty-member",
			".mitarbeiter", ".employee", ".researcher", ".profile-card",
			".person-card", ".contact-card", ".vcard", ".staff-card",
			"[itemtype*='Person']", "[data-person]", "[data-staff]",
		},
		PersonSignals: []string{
			"person", "people", "staff", "mitarbeiter", "team", "faculty",
			"researcher", "professor", "profile", "vcard",
		},
		TitleHintSelectors: []string{
			".title", ".position", ".role", ".job-title", ".designation",
			".funktion", ".stelle", ".academic-title", ".rank",
			"[itemprop='jobTitle']",
		},
		AcademicTitles: []string{
			"Prof. Dr.-Ing. habil.", "Prof. Dr.-Ing.", "Prof. Dr. rer. nat.",
			"Prof. Dr. med.", "Prof. Dr. phil.", "Univ.-Prof. Dr.", "Univ.-Prof.",
			"Jun.-Prof. Dr.", "Jun.-Prof.", "apl. Prof. Dr.", "Prof. Dr.",
			"Assoc. Prof. Dr.", "Assoc. Prof.", "Asst. Prof.", "PD Dr.",
			"Dr.-Ing. habil.", "Dr.-Ing.", "Dr. rer. nat.", "Dr. phil.",
			"Dr. habil.", "Dr. med.", "Dr. techn.", "Dr. h.c.", "h.c.", "Dipl.-Ing.",
			"Associate Professor", "Assistant Professor", "Professor Dr.",
			"Professor", "Prof.", "Dr.", "Ph.D.", "PhD", "M.Sc.", "MSc",
		},
		RoleWords: []string{
			"prof", "research", "lectur", "wissenschaft", "ingenieur",
			"engineer", "group", "chair", "head", "leiter", "docente",
			"ricercat", "chercheur", "investigador",
		},
		GenericLabels: []string{
			"e-mail", "email", "mail", "info", "contact", "kontakt",
			"postanschrift", "anschrift", "adresse", "address",
			"team", "group", "office", "büro", "sekretariat",
			"telefon", "phone", "tel", "fax", "web", "website",
			"more", "details", "read more", "mehr", "weitere informationen",
			"verwaltung", "administration", "profile", "profil", "homepage",
			"send email", "send e-mail", "publications", "publikationen",
		},
		Fields: []FieldKeywords{
			{Name: "Power Electronics", Keywords: []string{
				"power electronics", "power converter", "inverter", "rectifier",
				"dc-dc converter", "ac-dc", "switching power", "pwm",
				"leistungselektronik", "stromrichter", "wechselrichter",
			}},
			{Name: "Electric Drives & Motors", Keywords: []string{
				"electric drives", "motor control", "electrical machines",
				"pmsm", "induction motor", "servo drive", "motion control",
				"elektrische antriebe", "elektrische maschinen",
			}},
			{Name: "Energy Systems", Keywords: []string{
				"energy systems", "renewable energy", "smart grid", "microgrid",
				"grid integration", "power systems", "hvdc", "energy storage",
				"energiesysteme", "energietechnik", "erneuerbare energie",
			}},
			{Name: "Battery & Storage", Keywords: []string{
				"battery", "bms", "battery management", "energy storage",
				"lithium-ion", "battery pack", "cell balancing", "batterie",
			}},
			{Name: "E-Mobility & EVs", Keywords: []string{
				"e-mobility", "electric vehicle", "powertrain",
				"traction drive", "charging", "vehicle electrification",
				"elektromobilität", "elektrofahrzeug",
			}},
			{Name: "Embedded & Real-Time", Keywords: []string{
				"embedded systems", "real-time", "microcontroller", "firmware",
				"hardware-in-the-loop", "rapid prototyping", "digital twin",
				"eingebettete systeme", "echtzeit",
			}},
			{Name: "Control Systems", Keywords: []string{
				"control systems", "automatic control", "digital control",
				"model predictive control", "robust control", "optimal control",
				"regelungstechnik", "regelsysteme",
			}},
		},
		RelevanceKeywords: []string{
			"power electronics", "energy systems", "renewable energy", "sustainable power",
			"battery management", "bms", "energy storage", "power conversion",
			"microgrid", "smart grid", "powertrain", "electric drives",
			"hydrogen systems", "fuel cell", "photovoltaics", "solar energy", "wind energy",
			"dc-dc", "ac-dc", "active power", "reactive power", "virtual inertia",
			"bidirectional charger", "bldc", "boost converter", "mppt",
			"distributed generation", "dual active bridge", "electric vehicle",
			"electric propulsion", "energy management", "harmonic compensation",
			"dspace", "opal-rt", "speedgoat", "plecs", "digsilent", "pscad", "rtds",
			"igbt", "mosfet", "induction motor", "modular multilevel converter",
			"multilevel inverter", "power flow", "power quality", "pmsm",
			"synchronous motor", "vehicle-to-grid", "voltage regulation",
			"power system stability", "wind turbine",
			"control systems", "automatic control", "digital control",
			"robust control", "sliding mode control", "model predictive control", "motion control",
			"embedded systems", "real-time simulation", "hardware-in-the-loop", "hil",
			"cyber-physical systems", "digital twin",
			"electrical engineering", "mechatronics", "instrumentation", "converter design",
			"power systems", "grid integration", "high voltage", "hvdc",
		},
		RelevanceByLanguage: map[string][]string{
			"German": {
				"leistungselektronik", "energiesysteme", "erneuerbare energie",
				"mikronetz", "batteriemanagement", "energiespeicher",
				"antriebsstrang", "elektrische antriebe", "fahrzeugelektrifizierung",
				"regelungstechnik", "automatisierungstechnik", "eingebettete systeme",
				"echtzeitsimulation", "elektrotechnik", "mechatronik", "messtechnik",
				"energietechnik", "windenergie", "photovoltaik", "brennstoffzellen",
				"wechselrichter", "stromrichter", "netzstabilität",
			},
			"Italian": {
				"elettronica di potenza", "sistemi energetici", "energia rinnovabile",
				"microrete", "gestione batterie", "accumulo energia",
				"sistemi di controllo", "controllo automatico", "sistemi embedded",
				"ingegneria elettrica", "meccatronica", "sistemi di potenza",
				"fotovoltaico", "veicolo elettrico",
			},
			"French": {
				"électronique de puissance", "systèmes énergétiques", "énergie renouvelable",
				"microréseau", "gestion de batterie", "stockage d'énergie",
				"systèmes de contrôle", "contrôle automatique", "systèmes embarqués",
				"génie électrique", "mécatronique", "photovoltaïque", "véhicule électrique",
			},
			"Spanish": {
				"electrónica de potencia", "sistemas energéticos", "energía renovable",
				"microrred", "gestión de baterías", "almacenamiento de energía",
				"sistemas de control", "control automático", "sistemas embebidos",
				"ingeniería eléctrica", "mecatrónica", "fotovoltaica", "vehículo eléctrico",
			},
			"Portuguese": {
				"eletrônica de potência", "sistemas energéticos", "energia renovável",
				"microrede", "gestão de baterias", "armazenamento de energia",
				"sistemas de controle", "controle automático", "sistemas embarcados",
				"engenharia elétrica", "mecatrônica", "veículo elétrico",
			},
		},
		CountryLanguage: map[string]string{
			"Germany": "German", "Austria": "German", "Switzerland": "German",
			"Italy": "Italian", "France": "French", "Belgium": "French",
			"Spain": "Spanish", "Mexico": "Spanish", "Argentina": "Spanish",
			"Chile": "Spanish", "Colombia": "Spanish",
			"Portugal": "Portuguese", "Brazil": "Portuguese",
		},
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		},
	}
}

// RelevanceKeywordsFor returns the English relevance keywords plus the
// translations for the country's language, if known.
func (v *Vocabulary) RelevanceKeywordsFor(country string) []string {
	keywords := append([]string(nil), v.RelevanceKeywords...)
	if lang, ok := v.CountryLanguage[country]; ok {
		keywords = append(keywords, v.RelevanceByLanguage[lang]...)
	}
	return keywords
}
