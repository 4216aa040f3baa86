package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"lms_backend/internal/model"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedService 幂等的演示数据种子流程。课程内容只从这里批量写入，
// web 请求路径不提供课程编辑能力
type SeedService struct {
	DB      *gorm.DB
	Storage *StorageService
}

func NewSeedService(db *gorm.DB, storage *StorageService) *SeedService {
	return &SeedService{DB: db, Storage: storage}
}

type moduleSeed struct {
	Title    string
	Type     model.ModuleType
	Content  string
	Deadline int // 截止天数，作业模块使用
	Quiz     *model.QuizData
	Video    *model.Video
}

// Seed 已有课程数据时整体跳过，重复执行是空操作
func (s *SeedService) Seed(ctx context.Context) error {
	var count int64
	if err := s.DB.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("Seed skipped, course catalog is not empty")
		return nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student := &model.User{Email: "student@test.com", Name: "小李", Role: model.Student}
		teacher := &model.User{Email: "teacher@test.com", Name: "王老师", Role: model.Teacher}
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		if err := tx.Create(teacher).Error; err != nil {
			return err
		}

		course := &model.Course{
			Title:       "Python 数据分析入门",
			Description: "学习 Python 及数据分析常用库：NumPy、Pandas、Matplotlib。",
			Tags:        "python,data,pandas,numpy",
			Author:      teacher.Name,
		}
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		seeds := demoModules()
		var firstAssignment *model.Assignment

		for i, seed := range seeds {
			module := &model.Module{
				CourseID: course.ID,
				Title:    seed.Title,
				Type:     seed.Type,
				Content:  seed.Content,
				Order:    i + 1,
			}
			if err := tx.Create(module).Error; err != nil {
				return err
			}

			switch seed.Type {
			case model.AssignmentModule:
				deadline := time.Now().AddDate(0, 0, seed.Deadline)
				assignment := &model.Assignment{
					ModuleID:    module.ID,
					Title:       seed.Title,
					Description: seed.Content,
					Deadline:    &deadline,
				}
				if seed.Quiz != nil {
					raw, err := json.Marshal(seed.Quiz)
					if err != nil {
						return err
					}
					assignment.TestData = string(raw)
				}
				if err := tx.Create(assignment).Error; err != nil {
					return err
				}
				if firstAssignment == nil && seed.Quiz == nil {
					firstAssignment = assignment
				}
			case model.VideoModule:
				video := seed.Video
				video.ModuleID = module.ID
				if err := tx.Create(video).Error; err != nil {
					return err
				}
			}
		}

		enrollment := &model.Enrollment{UserID: student.ID, CourseID: course.ID, Role: model.Student}
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}

		// 一条已批改的示例提交，教师工作台和进度展示都用得上
		if firstAssignment != nil {
			submission := &model.Submission{
				AssignmentID: firstAssignment.ID,
				StudentID:    student.ID,
				FilePath:     "example_code.py",
				Status:       model.SubmissionReviewed,
				Feedback:     "完成得不错，循环部分可以用向量化操作替代。",
				Grade:        8,
				SubmittedAt:  time.Now(),
			}
			if err := tx.Create(submission).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.writeExampleFile(ctx); err != nil {
		logger.Log.Warn("Seed example file write failed", zap.Error(err))
	}

	logger.Log.Info("Seed completed")
	return nil
}

func (s *SeedService) writeExampleFile(ctx context.Context) error {
	code := []byte(`import numpy as np

arr = np.array([1, 2, 3, 4, 5])

result = []
for i in range(len(arr)):
    result.append(arr[i] ** 2)

print(result)
`)
	_, err := s.Storage.Upload(ctx, "example_code.py", bytes.NewReader(code), int64(len(code)), "text/x-python")
	return err
}

func demoModules() []moduleSeed {
	return []moduleSeed{
		{Title: "Python 与 Jupyter 环境", Type: model.TextModule, Content: "<h3>安装 Python</h3><p>安装 Python、pip 与 Jupyter Notebook。</p>"},
		{Title: "NumPy 基础", Type: model.TextModule, Content: "<h3>创建数组</h3><p>np.array、np.zeros、np.ones 与常用运算。</p>"},
		{Title: "练习：NumPy", Type: model.AssignmentModule, Content: "<p>创建数组，完成数学运算，求最值并切片。</p>", Deadline: 7},
		{Title: "Pandas 基础", Type: model.TextModule, Content: "<h3>DataFrame 与 Series</h3><p>创建、索引（loc、iloc）、读取 CSV。</p>"},
		{Title: "练习：Pandas", Type: model.AssignmentModule, Content: "<p>加载 CSV，按条件过滤并统计。</p>", Deadline: 14},
		{Title: "Matplotlib 可视化", Type: model.TextModule, Content: "<h3>plot / scatter / hist</h3><p>基础图表与统计可视化。</p>"},
		{Title: "练习：可视化", Type: model.AssignmentModule, Content: "<p>用前一练习的数据绘制 2-3 种图表。</p>", Deadline: 21},
		{Title: "数据清洗", Type: model.TextModule, Content: "<h3>缺失值处理</h3><p>dropna、fillna、drop_duplicates。</p>"},
		{Title: "练习：数据清洗", Type: model.AssignmentModule, Content: "<p>对脏数据集做缺失值与重复值处理。</p>", Deadline: 28},
		{Title: "分组与聚合", Type: model.TextModule, Content: "<h3>groupby</h3><p>分组聚合与常用统计函数。</p>"},
		{Title: "练习：分组聚合", Type: model.AssignmentModule, Content: "<p>按类别分组并计算聚合指标。</p>", Deadline: 35},
		{Title: "数据合并", Type: model.TextModule, Content: "<h3>merge / concat</h3><p>按键连接与轴向拼接。</p>"},
		{Title: "练习：数据合并", Type: model.AssignmentModule, Content: "<p>按键合并两个 CSV 文件。</p>", Deadline: 42},
		{Title: "分析方法导论", Type: model.TextModule, Content: "<h3>完整案例</h3><p>真实数据集的分析流程与假设提出。</p>"},
		{Title: "期末项目", Type: model.AssignmentModule, Content: "<p>完整分析流程：加载、清洗、可视化、结论。</p>", Deadline: 50},
		{Title: "视频：Python 入门", Type: model.VideoModule, Video: &model.Video{
			Title: "视频：Python 入门", Description: "环境安装与语法基础。", VideoType: "youtube", VideoURL: "https://www.youtube.com/watch?v=8DvywoWv6fI",
		}},
		{Title: "视频：NumPy", Type: model.VideoModule, Video: &model.Video{
			Title: "视频：NumPy", Description: "数组创建与运算。", VideoType: "youtube", VideoURL: "https://www.youtube.com/watch?v=QUT1VHi_EJY",
		}},
		{Title: "视频：Pandas", Type: model.VideoModule, Video: &model.Video{
			Title: "视频：Pandas", Description: "DataFrame、Series 与 CSV 读取。", VideoType: "youtube", VideoURL: "https://www.youtube.com/watch?v=vmEHCJofslg",
		}},
		{Title: "测验：Python 基础", Type: model.AssignmentModule, Deadline: 5, Quiz: &model.QuizData{
			Questions: []model.QuizQuestion{
				{Question: "Python 中用哪个类型存储整数？", Options: []string{"float", "int", "str", "bool"}, CorrectAnswer: 1},
				{Question: "Python 中定义函数用哪个关键字？", Options: []string{"define", "function", "def", "func"}, CorrectAnswer: 2},
			},
		}},
		{Title: "测验：NumPy", Type: model.AssignmentModule, Deadline: 6, Quiz: &model.QuizData{
			Questions: []model.QuizQuestion{
				{Question: "NumPy 用什么类型存储数组？", Options: []string{"list", "tuple", "ndarray", "dict"}, CorrectAnswer: 2},
				{Question: "创建全零数组用哪个函数？", Options: []string{"np.one", "np.empty", "np.zeros", "np.full"}, CorrectAnswer: 2},
			},
		}},
	}
}
