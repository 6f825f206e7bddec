package conversion

// Coefficients were measured in game, one car at a time. Entries built with
// placeholder are flat guesses and carry Unverified.
var builtinRules = []Rule{
	// Tyre pressure is the same for every car: raw 57 is 26.0 psi, one raw
	// step is 0.1 psi.
	{Subject: TirePressure, Transform: uniform(20.3, 0.1)},

	{
		Subject: Toe,
		Models:  []string{"mclaren_720s_gt3"},
		Transform: split(
			Affine{Offset: -0.48, Scale: 0.01},
			Affine{Offset: -0.1, Scale: 0.01},
		),
	},
	{
		Subject: Toe,
		Models: []string{
			"nissan_gt_r_gt3_2018", "bmw_m6_gt3", "nissan_gt_r_gt3_2017",
			"bmw_m4_gt3", "bmw_m4_gt4", "chevrolet_camaro_gt4r", "mercedes_amg_gt4",
		},
		Transform: split(
			Affine{Offset: -0.2, Scale: 0.01},
			Affine{Offset: 0, Scale: 0.01},
		),
	},
	{Subject: Toe, Transform: uniform(-0.4, 0.01)},

	{Subject: Caster, Models: []string{"ferrari_488_gt3", "ferrari_488_gt3_evo"}, Transform: uniform(5, 0.159)},
	{Subject: Caster, Models: []string{"audi_r8_lms", "audi_r8_lms_evo"}, Transform: uniform(8.8, 8.0/34)},
	{Subject: Caster, Models: []string{"lamborghini_huracan_gt3", "lamborghini_huracan_gt3_evo", "lamborghini_huracan_st"}, Transform: uniform(6.2, 8.8/34)},
	{Subject: Caster, Models: []string{"mclaren_650s_gt3"}, Transform: uniform(5.3, 0.24)},
	{Subject: Caster, Models: []string{"nissan_gt_r_gt3_2018"}, Transform: uniform(12.5, 0.18)},
	{Subject: Caster, Models: []string{"bmw_m6_gt3"}, Transform: uniform(6.7, 8.3/40)},
	{Subject: Caster, Models: []string{"bentley_continental_gt3_2018", "bentley_continental_gt3_2016"}, Transform: uniform(8.3, 7.2/30)},
	{Subject: Caster, Models: []string{"porsche_991ii_gt3_cup", "porsche_991_gt3_r"}, Transform: uniform(7.3, 0.1)},
	{Subject: Caster, Models: []string{"nissan_gt_r_gt3_2017"}, Transform: uniform(6, 11.3/60)},
	{Subject: Caster, Models: []string{"amr_v12_vantage_gt3"}, Transform: uniform(8.3, 0.22)},
	{Subject: Caster, Models: []string{"lamborghini_gallardo_rex"}, Transform: uniform(4.9, 7.1/34)},
	{Subject: Caster, Models: []string{"jaguar_g3"}, Transform: uniform(4, 0.1825)},
	{Subject: Caster, Models: []string{"lexus_rc_f_gt3"}, Transform: uniform(7.9, 0.19)},
	{Subject: Caster, Models: []string{"honda_nsx_gt3", "honda_nsx_gt3_evo"}, Transform: uniform(8.8, 6.4/34)},
	{Subject: Caster, Models: []string{"mercedes_amg_gt3", "mercedes_amg_gt3_evo"}, Transform: uniform(6, 8.1/44)},
	{Subject: Caster, Models: []string{"amr_v8_vantage_gt3", "amr_v8_vantage_gt4"}, Transform: uniform(10.7, 5.4/30)},
	{Subject: Caster, Models: []string{"mclaren_720s_gt3"}, Transform: uniform(5.3, 2.7/11)},
	{Subject: Caster, Models: []string{"porsche_991ii_gt3_r"}, Transform: uniform(4.4, 0.2)},
	{Subject: Caster, Models: []string{"bmw_m4_gt3"}, Transform: uniform(6.1, 0.195)},
	{Subject: Caster, Models: []string{"alpine_a110_gt4"}, Transform: uniform(7.3, 6.4/34)},
	{Subject: Caster, Models: []string{"audi_r8_gt4"}, Transform: uniform(6.6, 6.7/34)},
	{Subject: Caster, Models: []string{"bmw_m4_gt4"}, Transform: placeholder(8.4)},
	{Subject: Caster, Models: []string{"chevrolet_camaro_gt4r"}, Transform: placeholder(7.1)},
	{Subject: Caster, Models: []string{"ginetta_g55_gt4"}, Transform: uniform(3.7, 0.2625)},
	{Subject: Caster, Models: []string{"ktm_xbow_gt4"}, Transform: uniform(1.7, 0.1925)},
	{Subject: Caster, Models: []string{"maserati_mc_gt4"}, Transform: uniform(3.4, 2.2/10)},
	{Subject: Caster, Models: []string{"mclaren_570s_gt4"}, Transform: uniform(5.3, 4.9/20)},
	{Subject: Caster, Models: []string{"mercedes_amg_gt4"}, Transform: uniform(9.2, 0.18)},
	{Subject: Caster, Models: []string{"porsche_718_cayman_gt4_mr"}, Transform: uniform(7.3, 2.9/28)},

	{
		Subject: BrakeBias,
		Models: []string{
			"ferrari_488_gt3", "mclaren_650s_gt3", "mclaren_720s_gt3",
			"ferrari_488_gt3_evo", "chevrolet_camaro_gt4r",
		},
		Transform: uniform(47, 0.2),
	},
	{
		Subject: BrakeBias,
		Models: []string{
			"audi_r8_gt4", "mercedes_amg_gt3_evo", "honda_nsx_gt3_evo", "audi_r8_lms_evo",
			"lamborghini_huracan_gt3_evo", "mercedes_amg_gt3", "audi_r8_lms",
			"lamborghini_huracan_gt3", "lamborghini_gallardo_rex", "lexus_rc_f_gt3",
			"honda_nsx_gt3", "lamborghini_huracan_st",
		},
		Transform: uniform(50, 0.2),
	},
	{
		Subject:   BrakeBias,
		Models:    []string{"nissan_gt_r_gt3_2017", "nissan_gt_r_gt3_2018", "bmw_m6_gt3"},
		Transform: uniform(47.5, 0.3),
	},
	{
		Subject: BrakeBias,
		Models: []string{
			"amr_v8_vantage_gt3", "bentley_continental_gt3_2016", "bentley_continental_gt3_2018",
			"amr_v12_vantage_gt3", "jaguar_g3",
		},
		Transform: uniform(57, 0.2),
	},
	{
		Subject:   BrakeBias,
		Models:    []string{"porsche_991ii_gt3_cup", "bmw_m4_gt4", "maserati_mc_gt4"},
		Transform: uniform(49, 0.2),
	},
	{Subject: BrakeBias, Models: []string{"porsche_991_gt3_r", "porsche_991ii_gt3_r"}, Transform: uniform(43, 0.2)},
	{Subject: BrakeBias, Models: []string{"bmw_m4_gt3"}, Transform: uniform(48.5, 0.3)},
	{
		Subject:   BrakeBias,
		Models:    []string{"alpine_a110_gt4", "amr_v8_vantage_gt4", "porsche_718_cayman_gt4_mr"},
		Transform: uniform(45, 0.2),
	},
	{Subject: BrakeBias, Models: []string{"ginetta_g55_gt4"}, Transform: uniform(46, 0.2)},
	{Subject: BrakeBias, Models: []string{"ktm_xbow_gt4"}, Transform: uniform(44, 0.2)},
	{Subject: BrakeBias, Models: []string{"mclaren_570s_gt4"}, Transform: uniform(60, 0.2)},
	{Subject: BrakeBias, Models: []string{"mercedes_amg_gt4"}, Transform: uniform(51, 0.2)},

	// No formulas are known for Camber or RodLength on any car.
}
