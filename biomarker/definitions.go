/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package biomarker

// ptr is a helper to create pointers to float64 literals
func ptr(f float64) *float64 {
	return &f
}

func sexAdjusted(male, female RangeOverride) map[Sex]RangeOverride {
	return map[Sex]RangeOverride{
		SexMale:   male,
		SexFemale: female,
	}
}

// GetDefinitions returns the built-in biomarker definitions.
// Lab ranges follow adult Brazilian laboratory practice; functional ranges
// are the narrower targets used for early deviation.
func GetDefinitions() []Definition {
	return []Definition{
		// ===== METABOLIC =====
		{
			ID: "glucose_fasting", Name: "Glicose de Jejum", Category: CategoryMetabolic, Unit: "mg/dL",
			LabRange: Range{70, 99}, FunctionalRange: Range{82, 88},
			CriticalLow: ptr(54), CriticalHigh: ptr(250),
			Aliases: []string{"glicemia", "glicose", "glucose", "glycemia", "glicemia de jejum", "fasting glucose", "fasting blood glucose"},
		},
		{
			ID: "hba1c", Name: "Hemoglobina Glicada", Category: CategoryMetabolic, Unit: "%",
			LabRange: Range{4.0, 5.6}, FunctionalRange: Range{4.8, 5.2},
			CriticalHigh: ptr(10),
			Aliases: []string{"a1c", "hemoglobina glicosilada", "glycated hemoglobin", "hemoglobin a1c", "hb a1c"},
		},
		{
			ID: "insulin_fasting", Name: "Insulina de Jejum", Category: CategoryMetabolic, Unit: "uUI/mL",
			LabRange: Range{2.6, 24.9}, FunctionalRange: Range{3, 8},
			CriticalHigh: ptr(50),
			Aliases: []string{"insulina", "insulin", "fasting insulin", "insulina basal"},
		},
		{
			ID: "homa_ir", Name: "HOMA-IR", Category: CategoryMetabolic, Unit: "",
			LabRange: Range{0, 2.71}, FunctionalRange: Range{0, 1.5},
			CriticalHigh: ptr(5),
			Aliases: []string{"homa", "indice homa", "homa ir", "insulin resistance index"},
		},
		{
			ID: "homa_beta", Name: "HOMA-Beta", Category: CategoryMetabolic, Unit: "%",
			LabRange: Range{27.7, 335.7}, FunctionalRange: Range{100, 200},
			Aliases: []string{"homa b", "homa beta", "homa-b"},
		},
		{
			ID: "fructosamine", Name: "Frutosamina", Category: CategoryMetabolic, Unit: "umol/L",
			LabRange: Range{205, 285}, FunctionalRange: Range{210, 250},
			Aliases: []string{"fructosamine"},
		},

		// ===== LIPID PROFILE =====
		{
			ID: "cholesterol_total", Name: "Colesterol Total", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{0, 200}, FunctionalRange: Range{150, 200},
			CriticalHigh: ptr(300),
			Aliases: []string{"colesterol", "ct", "total cholesterol", "cholesterol"},
		},
		{
			ID: "hdl", Name: "Colesterol HDL", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{40, 999}, FunctionalRange: Range{60, 90},
			CriticalLow: ptr(30),
			Aliases: []string{"hdl colesterol", "hdl-c", "hdl cholesterol", "colesterol bom"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(40)},
				RangeOverride{Min: ptr(50)},
			),
		},
		{
			ID: "ldl", Name: "Colesterol LDL", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{0, 130}, FunctionalRange: Range{0, 100},
			CriticalHigh: ptr(190),
			Aliases: []string{"ldl colesterol", "ldl-c", "ldl cholesterol", "colesterol ruim"},
		},
		{
			ID: "vldl", Name: "Colesterol VLDL", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{0, 40}, FunctionalRange: Range{0, 20},
			Aliases: []string{"vldl colesterol", "vldl-c"},
		},
		{
			ID: "triglycerides", Name: "Triglicerídeos", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{0, 150}, FunctionalRange: Range{0, 100},
			CriticalHigh: ptr(500),
			Aliases: []string{"tg", "triglicerides", "triglycerides", "trigliceridios"},
		},
		{
			ID: "non_hdl_cholesterol", Name: "Colesterol Não-HDL", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{0, 160}, FunctionalRange: Range{0, 130},
			Aliases: []string{"nao hdl", "colesterol nao hdl", "non-hdl cholesterol", "non hdl"},
		},
		{
			ID: "apolipoprotein_b", Name: "Apolipoproteína B", Category: CategoryLipid, Unit: "mg/dL",
			LabRange: Range{55, 140}, FunctionalRange: Range{55, 90},
			CriticalHigh: ptr(180),
			Aliases: []string{"apo b", "apob", "apolipoprotein b"},
		},
		{
			ID: "lp_a", Name: "Lipoproteína (a)", Category: CategoryLipid, Unit: "nmol/L",
			LabRange: Range{0, 75}, FunctionalRange: Range{0, 50},
			CriticalHigh: ptr(125),
			Aliases: []string{"lp(a)", "lipoproteina a", "lipoprotein(a)", "lipoprotein a"},
		},

		// ===== THYROID =====
		{
			ID: "tsh", Name: "TSH", Category: CategoryThyroid, Unit: "mUI/L",
			LabRange: Range{0.4, 4.0}, FunctionalRange: Range{1.0, 2.5},
			CriticalLow: ptr(0.01), CriticalHigh: ptr(10),
			Aliases: []string{"hormonio tireoestimulante", "tireotrofina", "thyroid stimulating hormone", "tsh ultrassensivel"},
		},
		{
			ID: "t4_free", Name: "T4 Livre", Category: CategoryThyroid, Unit: "ng/dL",
			LabRange: Range{0.8, 1.8}, FunctionalRange: Range{1.0, 1.5},
			CriticalLow: ptr(0.4), CriticalHigh: ptr(3),
			Aliases: []string{"t4l", "ft4", "tiroxina livre", "free t4", "free thyroxine"},
		},
		{
			ID: "t3_free", Name: "T3 Livre", Category: CategoryThyroid, Unit: "pg/mL",
			LabRange: Range{2.0, 4.4}, FunctionalRange: Range{3.0, 3.8},
			CriticalLow: ptr(1), CriticalHigh: ptr(6),
			Aliases: []string{"t3l", "ft3", "triiodotironina livre", "free t3"},
		},
		{
			ID: "t4_total", Name: "T4 Total", Category: CategoryThyroid, Unit: "ug/dL",
			LabRange: Range{4.5, 12}, FunctionalRange: Range{6, 10},
			Aliases: []string{"tiroxina total", "total t4", "tiroxina"},
		},
		{
			ID: "t3_total", Name: "T3 Total", Category: CategoryThyroid, Unit: "ng/dL",
			LabRange: Range{80, 200}, FunctionalRange: Range{100, 150},
			Aliases: []string{"triiodotironina total", "total t3", "triiodotironina"},
		},
		{
			ID: "reverse_t3", Name: "T3 Reverso", Category: CategoryThyroid, Unit: "ng/dL",
			LabRange: Range{9.2, 24.1}, FunctionalRange: Range{11, 18},
			Aliases: []string{"rt3", "reverse t3", "t3r"},
		},
		{
			ID: "anti_tpo", Name: "Anti-TPO", Category: CategoryThyroid, Unit: "UI/mL",
			LabRange: Range{0, 35}, FunctionalRange: Range{0, 15},
			CriticalHigh: ptr(100),
			Aliases: []string{"anti tpo", "antitpo", "anticorpo antiperoxidase", "tpo antibodies", "tpoab"},
		},
		{
			ID: "anti_tg", Name: "Anti-Tireoglobulina", Category: CategoryThyroid, Unit: "UI/mL",
			LabRange: Range{0, 115}, FunctionalRange: Range{0, 50},
			Aliases: []string{"anti tg", "antitireoglobulina", "anticorpo antitireoglobulina", "tgab", "thyroglobulin antibodies"},
		},

		// ===== HEMATOLOGIC =====
		{
			ID: "hemoglobin", Name: "Hemoglobina", Category: CategoryHematologic, Unit: "g/dL",
			LabRange: Range{12, 16}, FunctionalRange: Range{13.5, 14.5},
			CriticalLow: ptr(7), CriticalHigh: ptr(20),
			Aliases: []string{"hb", "hgb", "haemoglobin"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(13.5), Max: ptr(17.5)},
				RangeOverride{Min: ptr(12), Max: ptr(16)},
			),
		},
		{
			ID: "hematocrit", Name: "Hematócrito", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{36, 48}, FunctionalRange: Range{40, 45},
			CriticalLow: ptr(25), CriticalHigh: ptr(60),
			Aliases: []string{"ht", "hct", "hematocrito", "haematocrit"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(40), Max: ptr(54)},
				RangeOverride{Min: ptr(36), Max: ptr(48)},
			),
		},
		{
			ID: "rbc", Name: "Hemácias", Category: CategoryHematologic, Unit: "milhões/mm³",
			LabRange: Range{4.0, 5.5}, FunctionalRange: Range{4.5, 5.0},
			CriticalLow: ptr(2.5), CriticalHigh: ptr(7),
			Aliases: []string{"eritrocitos", "red blood cells", "globulos vermelhos", "contagem de hemacias"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(4.5), Max: ptr(6.0)},
				RangeOverride{Min: ptr(4.0), Max: ptr(5.5)},
			),
		},
		{
			ID: "mcv", Name: "VCM", Category: CategoryHematologic, Unit: "fL",
			LabRange: Range{80, 100}, FunctionalRange: Range{85, 92},
			CriticalLow: ptr(60), CriticalHigh: ptr(120),
			Aliases: []string{"volume corpuscular medio", "mean corpuscular volume"},
		},
		{
			ID: "mch", Name: "HCM", Category: CategoryHematologic, Unit: "pg",
			LabRange: Range{27, 33}, FunctionalRange: Range{28, 32},
			Aliases: []string{"hemoglobina corpuscular media", "mean corpuscular hemoglobin"},
		},
		{
			ID: "mchc", Name: "CHCM", Category: CategoryHematologic, Unit: "g/dL",
			LabRange: Range{32, 36}, FunctionalRange: Range{33, 35},
			Aliases: []string{"concentracao de hemoglobina corpuscular media", "mean corpuscular hemoglobin concentration"},
		},
		{
			ID: "rdw", Name: "RDW", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{11.5, 14.5}, FunctionalRange: Range{11.5, 13},
			CriticalHigh: ptr(20),
			Aliases: []string{"rdw-cv", "amplitude de distribuicao dos eritrocitos", "red cell distribution width"},
		},
		{
			ID: "wbc", Name: "Leucócitos", Category: CategoryHematologic, Unit: "/mm³",
			LabRange: Range{4000, 11000}, FunctionalRange: Range{5000, 8000},
			CriticalLow: ptr(2000), CriticalHigh: ptr(30000),
			Aliases: []string{"leucograma", "white blood cells", "globulos brancos", "contagem de leucocitos"},
		},
		{
			ID: "neutrophils", Name: "Neutrófilos", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{40, 70}, FunctionalRange: Range{50, 60},
			Aliases: []string{"segmentados", "neutrophils", "neutrofilos segmentados"},
		},
		{
			ID: "lymphocytes", Name: "Linfócitos", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{20, 40}, FunctionalRange: Range{25, 35},
			Aliases: []string{"lymphocytes", "linfocitos tipicos"},
		},
		{
			ID: "monocytes", Name: "Monócitos", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{2, 8}, FunctionalRange: Range{3, 6},
			Aliases: []string{"monocytes"},
		},
		{
			ID: "eosinophils", Name: "Eosinófilos", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{1, 4}, FunctionalRange: Range{1, 3},
			CriticalHigh: ptr(15),
			Aliases: []string{"eosinophils", "eos"},
		},
		{
			ID: "basophils", Name: "Basófilos", Category: CategoryHematologic, Unit: "%",
			LabRange: Range{0, 1}, FunctionalRange: Range{0, 0.5},
			Aliases: []string{"basophils", "baso"},
		},
		{
			ID: "platelets", Name: "Plaquetas", Category: CategoryHematologic, Unit: "/mm³",
			LabRange: Range{150000, 400000}, FunctionalRange: Range{200000, 300000},
			CriticalLow: ptr(50000), CriticalHigh: ptr(1000000),
			Aliases: []string{"plt", "platelets", "contagem de plaquetas", "trombocitos"},
		},
		{
			ID: "mpv", Name: "VPM", Category: CategoryHematologic, Unit: "fL",
			LabRange: Range{7.5, 11.5}, FunctionalRange: Range{8, 10},
			Aliases: []string{"volume plaquetario medio", "mean platelet volume"},
		},

		// ===== IRON METABOLISM =====
		{
			ID: "iron", Name: "Ferro Sérico", Category: CategoryIron, Unit: "ug/dL",
			LabRange: Range{60, 170}, FunctionalRange: Range{85, 130},
			CriticalLow: ptr(30), CriticalHigh: ptr(300),
			Aliases: []string{"ferro", "fe", "serum iron"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(65), Max: ptr(175)},
				RangeOverride{Min: ptr(50), Max: ptr(170)},
			),
		},
		{
			ID: "ferritin", Name: "Ferritina", Category: CategoryIron, Unit: "ng/mL",
			LabRange: Range{12, 150}, FunctionalRange: Range{50, 100},
			CriticalLow: ptr(10), CriticalHigh: ptr(1000),
			Aliases: []string{"ferritin", "ferritina serica"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(20), Max: ptr(300)},
				RangeOverride{Min: ptr(12), Max: ptr(150)},
			),
		},
		{
			ID: "transferrin", Name: "Transferrina", Category: CategoryIron, Unit: "mg/dL",
			LabRange: Range{200, 360}, FunctionalRange: Range{250, 320},
			Aliases: []string{"transferrin"},
		},
		{
			ID: "tibc", Name: "Capacidade Total de Ligação do Ferro", Category: CategoryIron, Unit: "ug/dL",
			LabRange: Range{250, 370}, FunctionalRange: Range{280, 340},
			Aliases: []string{"ctlf", "total iron binding capacity", "capacidade de ligacao do ferro"},
		},
		{
			ID: "transferrin_saturation", Name: "Índice de Saturação de Transferrina", Category: CategoryIron, Unit: "%",
			LabRange: Range{20, 50}, FunctionalRange: Range{30, 40},
			CriticalLow: ptr(10), CriticalHigh: ptr(80),
			Aliases: []string{"ist", "tsat", "saturacao de transferrina", "transferrin saturation", "sat transferrina"},
		},

		// ===== LIVER =====
		{
			ID: "alt", Name: "ALT (TGP)", Category: CategoryLiver, Unit: "U/L",
			LabRange: Range{0, 41}, FunctionalRange: Range{10, 25},
			CriticalHigh: ptr(200),
			Aliases: []string{"tgp", "alanina aminotransferase", "sgpt", "alanine aminotransferase"},
			Adjustments: sexAdjusted(
				RangeOverride{Max: ptr(45)},
				RangeOverride{Max: ptr(34)},
			),
		},
		{
			ID: "ast", Name: "AST (TGO)", Category: CategoryLiver, Unit: "U/L",
			LabRange: Range{0, 40}, FunctionalRange: Range{10, 25},
			CriticalHigh: ptr(200),
			Aliases: []string{"tgo", "aspartato aminotransferase", "sgot", "aspartate aminotransferase"},
			Adjustments: sexAdjusted(
				RangeOverride{Max: ptr(40)},
				RangeOverride{Max: ptr(32)},
			),
		},
		{
			ID: "ggt", Name: "Gama GT", Category: CategoryLiver, Unit: "U/L",
			LabRange: Range{0, 60}, FunctionalRange: Range{10, 30},
			CriticalHigh: ptr(300),
			Aliases: []string{"gama glutamil transferase", "gamma gt", "gamma-glutamyl transferase", "ggtp"},
			Adjustments: sexAdjusted(
				RangeOverride{Max: ptr(71)},
				RangeOverride{Max: ptr(42)},
			),
		},
		{
			ID: "alkaline_phosphatase", Name: "Fosfatase Alcalina", Category: CategoryLiver, Unit: "U/L",
			LabRange: Range{40, 129}, FunctionalRange: Range{50, 100},
			CriticalHigh: ptr(500),
			Aliases: []string{"fa", "alp", "alkaline phosphatase"},
		},
		{
			ID: "bilirubin_total", Name: "Bilirrubina Total", Category: CategoryLiver, Unit: "mg/dL",
			LabRange: Range{0.2, 1.2}, FunctionalRange: Range{0.3, 0.9},
			CriticalHigh: ptr(5),
			Aliases: []string{"bt", "total bilirubin", "bilirrubinas totais"},
		},
		{
			ID: "bilirubin_direct", Name: "Bilirrubina Direta", Category: CategoryLiver, Unit: "mg/dL",
			LabRange: Range{0, 0.3}, FunctionalRange: Range{0, 0.2},
			CriticalHigh: ptr(2),
			Aliases: []string{"bd", "direct bilirubin", "bilirrubina conjugada"},
		},
		{
			ID: "bilirubin_indirect", Name: "Bilirrubina Indireta", Category: CategoryLiver, Unit: "mg/dL",
			LabRange: Range{0.1, 0.9}, FunctionalRange: Range{0.2, 0.7},
			Aliases: []string{"bi", "indirect bilirubin", "bilirrubina nao conjugada"},
		},
		{
			ID: "albumin", Name: "Albumina", Category: CategoryLiver, Unit: "g/dL",
			LabRange: Range{3.5, 5.5}, FunctionalRange: Range{4, 5},
			CriticalLow: ptr(2),
			Aliases: []string{"albumin", "albumina serica", "alb"},
		},
		{
			ID: "total_protein", Name: "Proteínas Totais", Category: CategoryLiver, Unit: "g/dL",
			LabRange: Range{6, 8}, FunctionalRange: Range{6.9, 7.4},
			Aliases: []string{"pt", "total protein", "proteinas totais e fracoes"},
		},
		{
			ID: "globulin", Name: "Globulinas", Category: CategoryLiver, Unit: "g/dL",
			LabRange: Range{2, 3.5}, FunctionalRange: Range{2.4, 2.8},
			Aliases: []string{"globulina", "globulin"},
		},

		// ===== KIDNEY =====
		{
			ID: "creatinine", Name: "Creatinina", Category: CategoryKidney, Unit: "mg/dL",
			LabRange: Range{0.6, 1.2}, FunctionalRange: Range{0.8, 1.1},
			CriticalHigh: ptr(5),
			Aliases: []string{"cr", "creatinine", "creatinina serica"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(0.7), Max: ptr(1.3)},
				RangeOverride{Min: ptr(0.5), Max: ptr(1.1)},
			),
		},
		{
			ID: "urea", Name: "Ureia", Category: CategoryKidney, Unit: "mg/dL",
			LabRange: Range{15, 45}, FunctionalRange: Range{15, 25},
			CriticalHigh: ptr(100),
			Aliases: []string{"urea", "ureia serica"},
		},
		{
			ID: "bun", Name: "BUN", Category: CategoryKidney, Unit: "mg/dL",
			LabRange: Range{7, 20}, FunctionalRange: Range{10, 16},
			CriticalHigh: ptr(50),
			Aliases: []string{"nitrogenio ureico", "blood urea nitrogen"},
		},
		{
			ID: "gfr", Name: "Taxa de Filtração Glomerular", Category: CategoryKidney, Unit: "mL/min/1.73m²",
			LabRange: Range{60, 999}, FunctionalRange: Range{90, 120},
			CriticalLow: ptr(15),
			Aliases: []string{"tfg", "egfr", "clearance de creatinina", "tfg estimada", "glomerular filtration rate"},
		},
		{
			ID: "uric_acid", Name: "Ácido Úrico", Category: CategoryKidney, Unit: "mg/dL",
			LabRange: Range{2.5, 7.0}, FunctionalRange: Range{3, 5.5},
			CriticalHigh: ptr(12),
			Aliases: []string{"uric acid", "urato"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(3.5), Max: ptr(7.2)},
				RangeOverride{Min: ptr(2.5), Max: ptr(6.0)},
			),
		},
		{
			ID: "microalbumin", Name: "Microalbuminúria", Category: CategoryKidney, Unit: "mg/L",
			LabRange: Range{0, 30}, FunctionalRange: Range{0, 20},
			CriticalHigh: ptr(300),
			Aliases: []string{"microalbumina", "albumina urinaria", "microalbumin", "urine albumin"},
		},

		// ===== ELECTROLYTES =====
		{
			ID: "sodium", Name: "Sódio", Category: CategoryElectrolytes, Unit: "mEq/L",
			LabRange: Range{136, 145}, FunctionalRange: Range{139, 143},
			CriticalLow: ptr(120), CriticalHigh: ptr(160),
			Aliases: []string{"na", "sodium", "na+"},
		},
		{
			ID: "potassium", Name: "Potássio", Category: CategoryElectrolytes, Unit: "mEq/L",
			LabRange: Range{3.5, 5.0}, FunctionalRange: Range{4.0, 4.5},
			CriticalLow: ptr(2.5), CriticalHigh: ptr(6.5),
			Aliases: []string{"k", "potassium", "k+", "kalemia"},
		},
		{
			ID: "chloride", Name: "Cloro", Category: CategoryElectrolytes, Unit: "mEq/L",
			LabRange: Range{98, 106}, FunctionalRange: Range{100, 104},
			CriticalLow: ptr(85), CriticalHigh: ptr(120),
			Aliases: []string{"cl", "chloride", "cloreto"},
		},
		{
			ID: "magnesium", Name: "Magnésio", Category: CategoryElectrolytes, Unit: "mg/dL",
			LabRange: Range{1.7, 2.3}, FunctionalRange: Range{2.0, 2.5},
			CriticalLow: ptr(1), CriticalHigh: ptr(4),
			Aliases: []string{"mg", "magnesium", "magnesio serico"},
		},
		{
			ID: "calcium", Name: "Cálcio Total", Category: CategoryElectrolytes, Unit: "mg/dL",
			LabRange: Range{8.5, 10.5}, FunctionalRange: Range{9.2, 10},
			CriticalLow: ptr(6), CriticalHigh: ptr(14),
			Aliases: []string{"calcio", "ca", "calcium", "total calcium"},
		},
		{
			ID: "calcium_ionized", Name: "Cálcio Iônico", Category: CategoryElectrolytes, Unit: "mmol/L",
			LabRange: Range{1.15, 1.35}, FunctionalRange: Range{1.2, 1.3},
			CriticalLow: ptr(0.8), CriticalHigh: ptr(1.6),
			Aliases: []string{"calcio ionizado", "ionized calcium", "ca ionico", "ca++"},
		},
		{
			ID: "phosphorus", Name: "Fósforo", Category: CategoryElectrolytes, Unit: "mg/dL",
			LabRange: Range{2.5, 4.5}, FunctionalRange: Range{3, 4},
			CriticalLow: ptr(1), CriticalHigh: ptr(8),
			Aliases: []string{"p", "phosphorus", "fosfato", "phosphate"},
		},

		// ===== INFLAMMATORY =====
		{
			ID: "crp", Name: "Proteína C Reativa", Category: CategoryInflammatory, Unit: "mg/L",
			LabRange: Range{0, 5}, FunctionalRange: Range{0, 1},
			CriticalHigh: ptr(50),
			Aliases: []string{"pcr", "c-reactive protein", "c reactive protein"},
		},
		{
			ID: "crp_high_sensitivity", Name: "PCR Ultrassensível", Category: CategoryInflammatory, Unit: "mg/L",
			LabRange: Range{0, 3}, FunctionalRange: Range{0, 0.8},
			CriticalHigh: ptr(10),
			Aliases: []string{"pcr-us", "pcr us", "hs-crp", "hscrp", "pcr ultra sensivel", "high sensitivity crp"},
		},
		{
			ID: "esr", Name: "VHS", Category: CategoryInflammatory, Unit: "mm/h",
			LabRange: Range{0, 20}, FunctionalRange: Range{0, 10},
			CriticalHigh: ptr(100),
			Aliases: []string{"velocidade de hemossedimentacao", "erythrocyte sedimentation rate", "sed rate"},
			Adjustments: sexAdjusted(
				RangeOverride{Max: ptr(15)},
				RangeOverride{Max: ptr(20)},
			),
		},
		{
			ID: "homocysteine", Name: "Homocisteína", Category: CategoryInflammatory, Unit: "umol/L",
			LabRange: Range{4, 15}, FunctionalRange: Range{6, 9},
			CriticalHigh: ptr(30),
			Aliases: []string{"homocysteine", "hcy"},
		},
		{
			ID: "fibrinogen", Name: "Fibrinogênio", Category: CategoryInflammatory, Unit: "mg/dL",
			LabRange: Range{200, 400}, FunctionalRange: Range{200, 300},
			CriticalLow: ptr(100), CriticalHigh: ptr(700),
			Aliases: []string{"fibrinogen"},
		},

		// ===== VITAMINS =====
		{
			ID: "vitamin_d", Name: "Vitamina D (25-OH)", Category: CategoryVitamins, Unit: "ng/mL",
			LabRange: Range{30, 100}, FunctionalRange: Range{50, 80},
			CriticalLow: ptr(10), CriticalHigh: ptr(150),
			Aliases: []string{"vitamina d", "25-oh vitamina d", "25 hidroxivitamina d", "vitamin d", "calcidiol"},
		},
		{
			ID: "vitamin_b12", Name: "Vitamina B12", Category: CategoryVitamins, Unit: "pg/mL",
			LabRange: Range{200, 900}, FunctionalRange: Range{500, 800},
			CriticalLow: ptr(150),
			Aliases: []string{"b12", "cobalamina", "vitamin b12", "cianocobalamina"},
		},
		{
			ID: "folate", Name: "Ácido Fólico", Category: CategoryVitamins, Unit: "ng/mL",
			LabRange: Range{3, 17}, FunctionalRange: Range{10, 15},
			CriticalLow: ptr(2),
			Aliases: []string{"folato", "folate", "folic acid", "vitamina b9"},
		},

		// ===== HORMONAL =====
		{
			ID: "cortisol_am", Name: "Cortisol Matinal", Category: CategoryHormonal, Unit: "ug/dL",
			LabRange: Range{6, 23}, FunctionalRange: Range{10, 18},
			CriticalLow: ptr(3), CriticalHigh: ptr(35),
			Aliases: []string{"cortisol", "cortisol basal", "morning cortisol"},
		},
		{
			ID: "dhea_s", Name: "DHEA-S", Category: CategoryHormonal, Unit: "ug/dL",
			LabRange: Range{35, 430}, FunctionalRange: Range{150, 350},
			Aliases: []string{"dhea", "sulfato de dehidroepiandrosterona", "dheas"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(80), Max: ptr(560)},
				RangeOverride{Min: ptr(35), Max: ptr(430)},
			),
		},
		{
			ID: "testosterone_total", Name: "Testosterona Total", Category: CategoryHormonal, Unit: "ng/dL",
			LabRange: Range{270, 1070}, FunctionalRange: Range{500, 800},
			CriticalLow: ptr(200),
			Aliases: []string{"testosterona", "testosterone", "total testosterone"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(270), Max: ptr(1070)},
				RangeOverride{Min: ptr(8), Max: ptr(60)},
			),
		},
		{
			ID: "estradiol", Name: "Estradiol", Category: CategoryHormonal, Unit: "pg/mL",
			LabRange: Range{20, 300}, FunctionalRange: Range{50, 150},
			Aliases: []string{"e2", "estradiol serico"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(10), Max: ptr(50)},
				RangeOverride{Min: ptr(20), Max: ptr(350)},
			),
		},
		{
			ID: "progesterone", Name: "Progesterona", Category: CategoryHormonal, Unit: "ng/mL",
			LabRange: Range{0.2, 25}, FunctionalRange: Range{10, 20},
			Aliases: []string{"progesterone", "p4"},
		},
		{
			ID: "prolactin", Name: "Prolactina", Category: CategoryHormonal, Unit: "ng/mL",
			LabRange: Range{2, 25}, FunctionalRange: Range{5, 15},
			CriticalHigh: ptr(100),
			Aliases: []string{"prl", "prolactin"},
			Adjustments: sexAdjusted(
				RangeOverride{Min: ptr(2), Max: ptr(18)},
				RangeOverride{Min: ptr(2), Max: ptr(25)},
			),
		},

		// ===== CARDIAC =====
		{
			ID: "bnp", Name: "BNP", Category: CategoryCardiac, Unit: "pg/mL",
			LabRange: Range{0, 100}, FunctionalRange: Range{0, 50},
			CriticalHigh: ptr(400),
			Aliases: []string{"peptideo natriuretico cerebral", "brain natriuretic peptide"},
		},
		{
			ID: "nt_probnp", Name: "NT-proBNP", Category: CategoryCardiac, Unit: "pg/mL",
			LabRange: Range{0, 300}, FunctionalRange: Range{0, 125},
			CriticalHigh: ptr(2000),
			Aliases: []string{"nt probnp", "ntprobnp", "pro-bnp"},
		},
		{
			ID: "troponin_i", Name: "Troponina I", Category: CategoryCardiac, Unit: "ng/mL",
			LabRange: Range{0, 0.04}, FunctionalRange: Range{0, 0.01},
			CriticalHigh: ptr(0.4),
			Aliases: []string{"troponina", "troponin", "ctni", "troponin i"},
		},

		// ===== BONE =====
		{
			ID: "pth", Name: "Paratormônio (PTH)", Category: CategoryBone, Unit: "pg/mL",
			LabRange: Range{15, 65}, FunctionalRange: Range{20, 45},
			CriticalHigh: ptr(300),
			Aliases: []string{"paratormonio", "parathyroid hormone", "pth intacto"},
		},
		{
			ID: "osteocalcin", Name: "Osteocalcina", Category: CategoryBone, Unit: "ng/mL",
			LabRange: Range{11, 43}, FunctionalRange: Range{15, 35},
			Aliases: []string{"osteocalcin", "bgp"},
		},
	}
}
