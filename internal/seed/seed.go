package seed

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/store"
)

// DefaultCounselor is the profile the console starts with
func DefaultCounselor() appModels.CounselorInfo {
	return appModels.CounselorInfo{
		Name:       "陈老师",
		Title:      "计算机学院辅导员",
		Avatar:     "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
		ThemeColor: "blue",
	}
}

type demoStudent struct {
	fields appModels.StudentFields
	tags   []appModels.Tag
	events []appModels.EventFields
}

var demoStudents = []demoStudent{
	{
		fields: appModels.StudentFields{
			Name: "张三", Gender: appModels.GenderMale, Department: "信息工程学院", Grade: "2021级",
			Major: "计算机科学与技术", ClassName: "计科2101", StudentNumber: "20210001",
			IDCard: "110101200301011234", Address: "北京市朝阳区某街道101号", Origin: "北京市",
			Birthday: "2003-01-01", Phone: "13800000001", FatherName: "张大三", FatherPhone: "13900000001",
			MotherName: "李美兰", MotherPhone: "13900000002", DormID: "南区-101",
		},
		tags: []appModels.Tag{appModels.TagAcademicWarning},
		events: []appModels.EventFields{
			{Category: appModels.EventHonor, Title: "数学竞赛一等奖", Date: "2023-09-15", Detail: "表现优异"},
		},
	},
	{
		fields: appModels.StudentFields{
			Name: "李华", Gender: appModels.GenderFemale, Department: "商学院", Grade: "2022级",
			Major: "会计学", ClassName: "会计2202", StudentNumber: "20210002",
			IDCard: "110101200302021234", Address: "上海市浦东新区", Origin: "上海市",
			Birthday: "2003-02-02", Phone: "13800000002", FatherName: "李父", FatherPhone: "13900000003",
			MotherName: "王母", MotherPhone: "13900000004", DormID: "北区-202",
		},
		tags: []appModels.Tag{appModels.TagPartyMember},
	},
}

// LoadDemoData fills an empty store with two students, one honor and one story
// so a fresh console has something to show. Failures are collected, not fatal.
func LoadDemoData(st *store.Store, lgr zerolog.Logger) error {
	if len(st.Snapshot().Students) > 0 {
		lgr.Info().Msg("Store already has students, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Loading demo data...")
	var finalErr error

	batch := make([]appModels.StudentFields, len(demoStudents))
	for i, d := range demoStudents {
		batch[i] = d.fields
	}
	created := st.AppendStudents(batch)

	for i, student := range created {
		demo := demoStudents[i]
		if len(demo.tags) > 0 {
			if _, _, err := st.SetTags(student.ID, demo.tags); err != nil {
				lgr.Error().Err(err).Str("student", student.Name).Msg("Error tagging demo student")
				finalErr = errors.Join(finalErr, fmt.Errorf("tagging %s: %w", student.Name, err))
			}
		}
		for _, ev := range demo.events {
			st.AppendEvent(student.ID, ev)
		}
	}

	// The first demo student wins the demo honor
	if len(created) > 0 {
		st.RecordHonor(appModels.HonorFields{
			Title:       "全国数学建模",
			Level:       "一等奖",
			StudentID:   created[0].ID,
			StudentName: created[0].Name,
			Date:        "2023-09",
		})
	}

	st.RecordStory(appModels.StoryFields{
		Title:   "支教岁月",
		Author:  "陈老师",
		Tags:    []string{"公益"},
		Image:   "https://picsum.photos/id/101/400/300",
		Summary: "在那座大山深处...",
	})

	lgr.Info().Int("students", len(created)).Msg("Demo data loaded")
	return finalErr
}
