// pkg/registry/defaults.go
package registry

// DefaultRuleset returns the compiled-in ruleset used when no data file is
// configured. It mirrors the shape of a ruleset JSON file exactly, so a
// deployment can start from this and override with a versioned file later.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Version:     "builtin-1.4.0",
		LastUpdated: "2026-07-18",

		FieldLabels: map[string]string{
			// identity
			"first name":                     "first_name",
			"your first name":                "first_name",
			"what is your first name?":       "first_name",
			"name (first)":                   "first_name",
			"fname":                          "first_name",
			"last name":                      "last_name",
			"your last name":                 "last_name",
			"what is your last name?":        "last_name",
			"name (last)":                    "last_name",
			"lname":                          "last_name",
			"surname":                        "last_name",
			"email":                          "email",
			"email address":                  "email",
			"your email":                     "email",
			"your email address":             "email",
			"e-mail":                         "email",
			"best email to reach you":        "email",
			"contact email":                  "email",
			"phone":                          "phone",
			"phone number":                   "phone",
			"your phone number":              "phone",
			"best phone number to reach you": "phone",
			"cell phone":                     "phone",
			"mobile":                         "phone",
			"mobile number":                  "phone",
			"contact number":                 "phone",

			// asset descriptors
			"boat make":                "boat_make",
			"make of boat":             "boat_make",
			"vessel make":              "boat_make",
			"manufacturer":             "boat_make",
			"what brand is your boat?": "boat_make",
			"boat model":               "boat_model",
			"model of boat":            "boat_model",
			"vessel model":             "boat_model",
			"boat year":                "boat_year",
			"year of boat":             "boat_year",
			"what year is your boat?":  "boat_year",
			"model year":               "boat_year",
			"boat length":              "boat_length",
			"length of boat":           "boat_length",
			"length (ft)":              "boat_length",
			"how long is your boat?":   "boat_length",
			"vessel length overall":    "boat_length",
			"boat type":                "boat_type",
			"type of boat":             "boat_type",
			"type of vessel":           "boat_type",
			"sail or power?":           "boat_type",

			// service text
			"service requested":                    "service_requested",
			"service needed":                       "service_requested",
			"what service do you need?":            "service_requested",
			"which service are you interested in?": "service_requested",
			"what can we help you with?":           "service_requested",
			"requested service":                    "service_requested",
			"service type":                         "service_requested",
			"service details":                      "service_details",
			"describe the work needed":             "service_details",
			"tell us more about the job":           "service_details",
			"please describe the issue":            "service_details",
			"description of problem":               "service_details",
			"notes":                                "notes",
			"additional notes":                     "notes",
			"additional comments":                  "notes",
			"anything else we should know?":        "notes",
			"comments":                             "notes",
			"message":                              "notes",

			// location
			"zip":                           "postal_code",
			"zip code":                      "postal_code",
			"zipcode":                       "postal_code",
			"postal code":                   "postal_code",
			"your zip code":                 "postal_code",
			"what is your zip code?":        "postal_code",
			"service zip code":              "postal_code",
			"city":                          "city",
			"your city":                     "city",
			"state":                         "state",
			"your state":                    "state",
			"marina":                        "marina_name",
			"marina name":                   "marina_name",
			"which marina is your boat at?": "marina_name",
			"slip number":                   "slip_number",
			"slip #":                        "slip_number",
			"dock/slip":                     "slip_number",
			"boat location":                 "boat_location",
			"where is the boat located?":    "boat_location",
			"location of vessel":            "boat_location",
			"in water or on trailer?":       "boat_location",

			// timeline / budget
			"timeline":                      "timeline",
			"when do you need this done?":   "timeline",
			"how soon do you need service?": "timeline",
			"preferred service date":        "timeline",
			"desired completion date":       "timeline",
			"budget":                        "budget",
			"estimated budget":              "budget",
			"what is your budget?":          "budget",
			"budget range":                  "budget",

			// form identity
			"form source": "form_source",
			"form id":     "form_source",
			"source form": "form_source",
		},

		FormSources: map[string]string{
			"emergency_tow_request":    "Boat Towing",
			"towing_quote_form":        "Boat Towing",
			"detailing_quote_form":     "Boat Detailing",
			"detailing_landing_page":   "Boat Detailing",
			"engine_service_form":      "Engine Repair",
			"outboard_repair_form":     "Engine Repair",
			"hull_cleaning_form":       "Hull Cleaning",
			"dive_service_form":        "Hull Cleaning",
			"bottom_paint_form":        "Bottom Painting",
			"electrical_service_form":  "Electrical Systems",
			"fiberglass_repair_form":   "Fiberglass Repair",
			"canvas_quote_form":        "Canvas & Upholstery",
			"transport_quote_form":     "Boat Transport",
			"winterization_form":       "Winterization",
			"plumbing_service_form":    "Marine Plumbing",
			"rigging_service_form":     "Rigging & Sails",
			"electronics_install_form": "Electronics Installation",
			"welding_fabrication_form": "Welding & Fabrication",
			"general_maintenance_form": "General Maintenance",
		},

		ServicePhrases: map[string]string{
			"boat towing":              "Boat Towing",
			"emergency tow":            "Boat Towing",
			"tow my boat":              "Boat Towing",
			"boat detailing":           "Boat Detailing",
			"wash and wax":             "Boat Detailing",
			"interior detailing":       "Boat Detailing",
			"engine repair":            "Engine Repair",
			"engine service":           "Engine Repair",
			"outboard repair":          "Engine Repair",
			"hull cleaning":            "Hull Cleaning",
			"bottom cleaning":          "Hull Cleaning",
			"bottom painting":          "Bottom Painting",
			"bottom paint":             "Bottom Painting",
			"antifouling paint":        "Bottom Painting",
			"electrical repair":        "Electrical Systems",
			"marine electrical":        "Electrical Systems",
			"fiberglass repair":        "Fiberglass Repair",
			"gelcoat repair":           "Fiberglass Repair",
			"canvas repair":            "Canvas & Upholstery",
			"upholstery":               "Canvas & Upholstery",
			"boat transport":           "Boat Transport",
			"boat hauling":             "Boat Transport",
			"winterization":            "Winterization",
			"shrink wrap":              "Winterization",
			"marine plumbing":          "Marine Plumbing",
			"head repair":              "Marine Plumbing",
			"rigging service":          "Rigging & Sails",
			"sail repair":              "Rigging & Sails",
			"electronics installation": "Electronics Installation",
			"gps installation":         "Electronics Installation",
			"welding":                  "Welding & Fabrication",
			"general maintenance":      "General Maintenance",
		},

		// First match wins; order within this table is the tie-breaker when
		// text mentions keywords for more than one category.
		Keywords: []KeywordRule{
			{Keyword: "tow", Category: "Boat Towing"},
			{Keyword: "stranded", Category: "Boat Towing"},
			{Keyword: "aground", Category: "Boat Towing"},
			{Keyword: "sinking", Category: "Boat Towing"},
			{Keyword: "engine", Category: "Engine Repair"},
			{Keyword: "motor", Category: "Engine Repair"},
			{Keyword: "outboard", Category: "Engine Repair"},
			{Keyword: "won't start", Category: "Engine Repair"},
			{Keyword: "overheating", Category: "Engine Repair"},
			{Keyword: "impeller", Category: "Engine Repair"},
			{Keyword: "detail", Category: "Boat Detailing"},
			{Keyword: "wax", Category: "Boat Detailing"},
			{Keyword: "polish", Category: "Boat Detailing"},
			{Keyword: "oxidation", Category: "Boat Detailing"},
			{Keyword: "bottom paint", Category: "Bottom Painting"},
			{Keyword: "antifoul", Category: "Bottom Painting"},
			{Keyword: "barnacle", Category: "Hull Cleaning"},
			{Keyword: "hull clean", Category: "Hull Cleaning"},
			{Keyword: "diver", Category: "Hull Cleaning"},
			{Keyword: "zinc", Category: "Hull Cleaning"},
			{Keyword: "wiring", Category: "Electrical Systems"},
			{Keyword: "battery", Category: "Electrical Systems"},
			{Keyword: "electrical", Category: "Electrical Systems"},
			{Keyword: "shore power", Category: "Electrical Systems"},
			{Keyword: "fiberglass", Category: "Fiberglass Repair"},
			{Keyword: "gelcoat", Category: "Fiberglass Repair"},
			{Keyword: "crack", Category: "Fiberglass Repair"},
			{Keyword: "canvas", Category: "Canvas & Upholstery"},
			{Keyword: "bimini", Category: "Canvas & Upholstery"},
			{Keyword: "upholster", Category: "Canvas & Upholstery"},
			{Keyword: "transport", Category: "Boat Transport"},
			{Keyword: "haul", Category: "Boat Transport"},
			{Keyword: "trailer", Category: "Boat Transport"},
			{Keyword: "winteriz", Category: "Winterization"},
			{Keyword: "shrink wrap", Category: "Winterization"},
			{Keyword: "plumbing", Category: "Marine Plumbing"},
			{Keyword: "head", Category: "Marine Plumbing"},
			{Keyword: "bilge pump", Category: "Marine Plumbing"},
			{Keyword: "rigging", Category: "Rigging & Sails"},
			{Keyword: "mast", Category: "Rigging & Sails"},
			{Keyword: "sail", Category: "Rigging & Sails"},
			{Keyword: "gps", Category: "Electronics Installation"},
			{Keyword: "radar", Category: "Electronics Installation"},
			{Keyword: "chartplotter", Category: "Electronics Installation"},
			{Keyword: "stereo", Category: "Electronics Installation"},
			{Keyword: "weld", Category: "Welding & Fabrication"},
			{Keyword: "fabricat", Category: "Welding & Fabrication"},
			{Keyword: "rail", Category: "Welding & Fabrication"},
			{Keyword: "maintenance", Category: "General Maintenance"},
			{Keyword: "tune up", Category: "General Maintenance"},
		},

		CategoryServices: map[string][]string{
			"Boat Towing": {
				"emergency towing", "salvage towing", "dock-to-dock towing",
				"ungrounding", "fuel delivery", "jump start",
			},
			"Boat Detailing": {
				"wash and wax", "interior detailing", "oxidation removal",
				"teak cleaning", "metal polishing", "ceramic coating",
			},
			"Engine Repair": {
				"outboard repair", "inboard repair", "diesel service",
				"impeller replacement", "fuel system repair", "oil change",
				"cooling system repair",
			},
			"Hull Cleaning": {
				"in-water hull cleaning", "barnacle removal", "zinc replacement",
				"propeller cleaning", "hull inspection",
			},
			"Bottom Painting": {
				"bottom paint application", "paint stripping", "barrier coat",
				"prop speed application",
			},
			"Electrical Systems": {
				"battery replacement", "wiring repair", "shore power repair",
				"lighting installation", "solar installation",
			},
			"Fiberglass Repair": {
				"gelcoat repair", "crack repair", "structural repair",
				"blister repair", "transom repair",
			},
			"Canvas & Upholstery": {
				"bimini top repair", "canvas replacement", "seat upholstery",
				"enclosure repair", "cushion replacement",
			},
			"Boat Transport": {
				"local transport", "long distance transport", "haul out",
				"launch service",
			},
			"Winterization": {
				"engine winterization", "shrink wrapping", "system winterization",
				"spring commissioning",
			},
			"Marine Plumbing": {
				"head repair", "bilge pump replacement", "freshwater system repair",
				"holding tank service",
			},
			"Rigging & Sails": {
				"standing rigging replacement", "running rigging", "sail repair",
				"mast stepping", "furler installation",
			},
			"Electronics Installation": {
				"gps installation", "radar installation", "fishfinder installation",
				"stereo installation", "vhf installation", "autopilot installation",
			},
			"Welding & Fabrication": {
				"rail fabrication", "tower fabrication", "aluminum welding",
				"stainless welding",
			},
			"General Maintenance": {
				"tune up", "seasonal maintenance", "pre-purchase inspection",
				"systems check",
			},
		},

		UrgencyKeywords: []string{
			"emergency", "urgent", "asap", "immediate", "sinking",
			"taking on water", "stranded", "right away", "today",
		},
		UrgentCategories: []string{"Boat Towing"},

		ShortDurationCategories: []string{
			"Boat Towing", "Hull Cleaning", "Boat Detailing",
		},
		LongDurationCategories: []string{
			"Bottom Painting", "Fiberglass Repair", "Boat Transport",
			"Rigging & Sails", "Welding & Fabrication",
		},

		DefaultCategory: "General Maintenance",

		PostalAreas: map[string]PostalArea{
			"33149": {City: "Key Biscayne", State: "FL", County: "Miami-Dade"},
			"33139": {City: "Miami Beach", State: "FL", County: "Miami-Dade"},
			"33301": {City: "Fort Lauderdale", State: "FL", County: "Broward"},
			"33040": {City: "Key West", State: "FL", County: "Monroe"},
			"33710": {City: "St. Petersburg", State: "FL", County: "Pinellas"},
			"32114": {City: "Daytona Beach", State: "FL", County: "Volusia"},
			"29401": {City: "Charleston", State: "SC", County: "Charleston"},
			"21401": {City: "Annapolis", State: "MD", County: "Anne Arundel"},
			"02554": {City: "Nantucket", State: "MA", County: "Nantucket"},
			"92101": {City: "San Diego", State: "CA", County: "San Diego"},
			"98101": {City: "Seattle", State: "WA", County: "King"},
			"10001": {City: "New York", State: "NY", County: "New York"},
		},
	}
}
