/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package kidney

// normalAdvice is shared by every test whose value falls inside the normal band.
const normalAdvice = "حافظ على نمط حياة صحي."

// Disclaimer must accompany every analysis shown to a patient.
const Disclaimer = "هذه الأداة للتوعية فقط وليست بديلاً عن استشارة الطبيب. يرجى مراجعة طبيب متخصص لتفسير النتائج واتخاذ القرارات العلاجية."

type directionalText struct {
	low    string
	high   string
	normal string
}

type testDefinition struct {
	name           string
	unit           string
	ranges         ReferenceRange
	interpretation directionalText
	advice         directionalText
}

func limit(v float64) *float64 {
	return &v
}

// catalog is read-only after package initialisation.
var catalog = map[Test]testDefinition{
	TestCreatinine: {
		name: "الكرياتينين (Creatinine)",
		unit: "mg/dL",
		ranges: ReferenceRange{
			Male:       Bounds{Min: 0.7, Max: 1.3},
			Female:     Bounds{Min: 0.6, Max: 1.1},
			DangerHigh: limit(4.0),
		},
		interpretation: directionalText{
			high:   "ارتفاع الكرياتينين قد يشير إلى ضعف في وظائف الكُلى. يُنصح بمتابعة الطبيب فوراً.",
			low:    "انخفاض الكرياتينين عادة لا يمثل مشكلة صحية كبيرة.",
			normal: "مستوى الكرياتينين طبيعي، مما يشير إلى وظائف كُلى سليمة.",
		},
		advice: directionalText{
			high: "تقليل البروتين في الطعام، شرب كمية كافية من الماء، ومتابعة الطبيب.",
			low:  "زيادة البروتين في الغذاء قليلاً.",
		},
	},
	TestUrea: {
		name: "اليوريا (Urea/BUN)",
		unit: "mg/dL",
		ranges: ReferenceRange{
			Male:       Bounds{Min: 7, Max: 20},
			Female:     Bounds{Min: 7, Max: 20},
			DangerHigh: limit(100),
		},
		interpretation: directionalText{
			high:   "ارتفاع اليوريا قد يدل على مشاكل في الكُلى أو الجفاف أو زيادة البروتين في الغذاء.",
			low:    "انخفاض اليوريا قد يكون بسبب سوء التغذية أو مشاكل في الكبد.",
			normal: "مستوى اليوريا طبيعي، مما يشير إلى توازن جيد في وظائف الكُلى.",
		},
		advice: directionalText{
			high: "تقليل البروتين، شرب المزيد من الماء، وتجنب الأطعمة المالحة.",
			low:  "زيادة البروتين في الغذاء واستشارة الطبيب.",
		},
	},
	TestPotassium: {
		name: "البوتاسيوم (K⁺)",
		unit: "mEq/L",
		ranges: ReferenceRange{
			Male:       Bounds{Min: 3.5, Max: 5.0},
			Female:     Bounds{Min: 3.5, Max: 5.0},
			DangerLow:  limit(2.5),
			DangerHigh: limit(6.5),
		},
		interpretation: directionalText{
			high:   "ارتفاع البوتاسيوم خطير وقد يؤثر على القلب. يجب مراجعة الطبيب فوراً!",
			low:    "انخفاض البوتاسيوم قد يسبب ضعف العضلات واضطرابات في نبض القلب.",
			normal: "مستوى البوتاسيوم طبيعي، مما يدعم صحة العضلات والقلب.",
		},
		advice: directionalText{
			high: "تجنب الموز والبرتقال والبطاطس والطماطم. راجع الطبيب فوراً!",
			low:  "تناول الأطعمة الغنية بالبوتاسيوم مثل الموز والبرتقال.",
		},
	},
	TestSodium: {
		name: "الصوديوم (Na⁺)",
		unit: "mEq/L",
		ranges: ReferenceRange{
			Male:       Bounds{Min: 136, Max: 145},
			Female:     Bounds{Min: 136, Max: 145},
			DangerLow:  limit(120),
			DangerHigh: limit(160),
		},
		interpretation: directionalText{
			high:   "ارتفاع الصوديوم قد يسبب الجفاف وارتفاع ضغط الدم.",
			low:    "انخفاض الصوديوم قد يسبب الإرهاق والصداع وتشنجات العضلات.",
			normal: "مستوى الصوديوم طبيعي، مما يحافظ على توازن السوائل في الجسم.",
		},
		advice: directionalText{
			high: "تقليل الملح في الطعام وشرب المزيد من الماء.",
			low:  "زيادة تناول الملح قليلاً واستشارة الطبيب.",
		},
	},
	TestPhosphorus: {
		name: "الفوسفور (Phosphorus)",
		unit: "mg/dL",
		ranges: ReferenceRange{
			Male:       Bounds{Min: 2.5, Max: 4.5},
			Female:     Bounds{Min: 2.5, Max: 4.5},
			DangerHigh: limit(7.0),
		},
		interpretation: directionalText{
			high:   "ارتفاع الفوسفور قد يشير إلى مشاكل في الكُلى ويؤثر على صحة العظام.",
			low:    "انخفاض الفوسفور قد يسبب ضعف العظام والعضلات.",
			normal: "مستوى الفوسفور طبيعي، مما يدعم صحة العظام والأسنان.",
		},
		advice: directionalText{
			high: "تقليل منتجات الألبان والمشروبات الغازية واللحوم الحمراء.",
			low:  "زيادة منتجات الألبان والبروتين في الغذاء.",
		},
	},
	TestCalcium: {
		name: "الكالسيوم (Calcium)",
		unit: "mg/dL",
		ranges: ReferenceRange{
			Male:       Bounds{Min: 8.5, Max: 10.5},
			Female:     Bounds{Min: 8.5, Max: 10.5},
			DangerLow:  limit(7.0),
			DangerHigh: limit(12.0),
		},
		interpretation: directionalText{
			high:   "ارتفاع الكالسيوم قد يسبب حصوات الكُلى وضعف العظام.",
			low:    "انخفاض الكالسيوم قد يسبب تشنجات عضلية وضعف العظام.",
			normal: "مستوى الكالسيوم طبيعي، مما يدعم صحة العظام والأعصاب.",
		},
		advice: directionalText{
			high: "تقليل منتجات الألبان ومكملات الكالسيوم.",
			low:  "زيادة منتجات الألبان وتناول مكملات الكالسيوم.",
		},
	},
}

// RangeFor returns a copy of the reference range of a test.
func RangeFor(test Test) (ReferenceRange, error) {
	def, ok := catalog[test]
	if !ok {
		return ReferenceRange{}, &UnknownTestError{Name: string(test)}
	}

	r := def.ranges
	if r.DangerLow != nil {
		r.DangerLow = limit(*r.DangerLow)
	}
	if r.DangerHigh != nil {
		r.DangerHigh = limit(*r.DangerHigh)
	}

	return r, nil
}
