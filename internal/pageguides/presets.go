package pageguides

const marketingCategory = "营销页面"

func section(path string, order int, name, description string, features ...string) SectionInput {
	return SectionInput{
		SectionName:        name,
		SectionDescription: description,
		SectionPath:        path,
		Features:           features,
		SortOrder:          order,
	}
}

// MarketingPresets returns the built-in guides for the marketing center pages.
func MarketingPresets() []UpsertGuideRequest {
	return []UpsertGuideRequest{
		{
			PagePath:        "/marketing/channels",
			PageName:        "营销渠道",
			PageDescription: "营销渠道管理是营销中心的核心功能之一。在这里您可以管理所有的营销推广渠道，包括线上线下各种渠道的配置、效果监控、成本分析和ROI计算。系统支持渠道分类管理、联系人维护、标签管理和详细的数据分析功能。",
			Category:        marketingCategory,
			Importance:      9,
			RelatedTables:   []string{"channel_trackings", "conversion_trackings", "marketing_campaigns", "users", "teachers", "parents"},
			ContextPrompt:   "用户正在营销渠道页面，专注于渠道管理和效果分析。用户可能需要查看渠道数据、分析ROI、管理渠道配置、优化推广效果等。请根据渠道跟踪和转化数据提供专业的营销建议。",
			Sections: []SectionInput{
				section("/marketing/channels", 1, "渠道概览", "展示所有营销渠道的整体效果统计，包括访问量、线索数、转化数和ROI等关键指标", "渠道统计", "效果对比", "成本分析", "ROI计算", "趋势分析", "渠道排名"),
				section("/marketing/channels", 2, "渠道管理", "管理各个营销渠道的基本信息、配置参数和状态控制", "渠道新建", "信息编辑", "状态管理", "分类设置", "参数配置", "批量操作"),
				section("/marketing/channels", 3, "联系人管理", "维护各渠道的联系人信息，支持联系人的增删改查和关系管理", "联系人添加", "信息维护", "关系绑定", "批量导入", "通讯录管理", "联系记录"),
				section("/marketing/channels", 4, "标签管理", "为渠道添加标签进行分类管理，支持标签的创建、编辑和批量操作", "标签创建", "分类管理", "批量标记", "标签筛选", "智能推荐", "标签统计"),
				section("/marketing/channels", 5, "数据分析", "深入分析渠道效果数据，提供多维度的数据可视化和报表功能", "效果分析", "图表展示", "数据导出", "对比分析", "预测模型", "报表生成"),
			},
		},
		{
			PagePath:        "/marketing/referrals",
			PageName:        "老带新",
			PageDescription: "老带新推荐系统是幼儿园获取新生源的重要渠道。通过现有家长的推荐，可以有效降低获客成本，提高转化率。系统提供完整的推荐关系管理、奖励机制设置、效果跟踪和数据分析功能，帮助幼儿园建立可持续的推荐营销体系。",
			Category:        marketingCategory,
			Importance:      8,
			RelatedTables:   []string{"referral_relationships", "parents", "students", "users", "marketing_campaigns", "enrollment_applications"},
			ContextPrompt:   "用户正在老带新页面，专注于推荐营销管理。用户可能需要查看推荐数据、管理推荐关系、设置奖励机制、分析推荐效果等。请结合推荐关系和家长数据提供针对性的建议。",
			Sections: []SectionInput{
				section("/marketing/referrals", 1, "推荐概览", "展示老带新推荐的整体效果，包括推荐数量、成功率、奖励发放等关键指标", "推荐统计", "成功率分析", "奖励统计", "趋势分析", "排行榜", "效果对比"),
				section("/marketing/referrals", 2, "推荐关系", "管理推荐人和被推荐人之间的关系，跟踪推荐状态和进展", "关系建立", "状态跟踪", "进展管理", "关系图谱", "批量导入", "关系验证"),
				section("/marketing/referrals", 3, "奖励机制", "设置和管理推荐奖励规则，包括奖励类型、发放条件和奖励记录", "奖励设置", "规则配置", "发放管理", "记录查询", "统计分析", "自动发放"),
				section("/marketing/referrals", 4, "效果分析", "分析老带新推荐的效果数据，提供多维度的统计和可视化分析", "效果统计", "转化分析", "成本效益", "趋势预测", "对比分析", "报表导出"),
			},
		},
		{
			PagePath:        "/marketing/conversions",
			PageName:        "转换统计",
			PageDescription: "转换统计页面提供全面的营销转换数据分析，帮助了解从线索到最终报名的完整转换过程。通过多维度的数据分析和可视化图表，可以识别转换瓶颈，优化营销策略，提高整体转换效率。",
			Category:        marketingCategory,
			Importance:      9,
			RelatedTables:   []string{"conversion_trackings", "channel_trackings", "marketing_campaigns", "enrollment_applications", "admission_results"},
			ContextPrompt:   "用户正在转换统计页面，专注于营销转换分析。用户可能需要查看转换数据、分析转换漏斗、优化转换路径、提升转换率等。请基于转换数据提供专业的优化建议。",
		},
		{
			PagePath:        "/marketing/funnel",
			PageName:        "销售漏斗",
			PageDescription: "销售漏斗分析是营销效果评估的重要工具，通过可视化展示从初次接触到最终报名的完整客户旅程。帮助识别各阶段的转换率，发现流失原因，优化销售流程，提升整体转换效果。",
			Category:        marketingCategory,
			Importance:      9,
			RelatedTables:   []string{"channel_trackings", "conversion_trackings", "enrollment_applications", "admission_results", "marketing_campaigns"},
			ContextPrompt:   "用户正在销售漏斗页面，专注于销售流程分析。用户可能需要查看漏斗数据、分析转换率、优化销售流程、提升转换效果等。请基于漏斗数据提供销售优化建议。",
		},
	}
}
